package notify

import "go.uber.org/zap"

// Notifier is the fire-and-forget sink for user-facing messages. Core
// operations call it but never depend on its result.
type Notifier interface {
	Success(message string)
	Info(message string)
	Error(message string)
}

type zapNotifier struct {
	log *zap.Logger
}

// NewZapNotifier emits notifications as structured log events, tagged with
// the user-facing level.
func NewZapNotifier(log *zap.Logger) Notifier {
	return &zapNotifier{log: log}
}

func (n *zapNotifier) Success(message string) {
	n.log.Info("notification", zap.String("level", "success"), zap.String("message", message))
}

func (n *zapNotifier) Info(message string) {
	n.log.Info("notification", zap.String("level", "info"), zap.String("message", message))
}

func (n *zapNotifier) Error(message string) {
	n.log.Warn("notification", zap.String("level", "error"), zap.String("message", message))
}

type nop struct{}

// Nop returns a notifier that drops every message.
func Nop() Notifier {
	return nop{}
}

func (nop) Success(string) {}
func (nop) Info(string)    {}
func (nop) Error(string)   {}
