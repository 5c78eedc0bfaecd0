package checkout

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/logger"
	"storefront-be/internal/pricing"

	"go.uber.org/zap"
)

// Confirmation is the terminal result of a successful checkout. Totals are
// captured before the cart is cleared.
type Confirmation struct {
	OrderNumber string         `json:"orderNumber"`
	Totals      pricing.Totals `json:"totals"`
}

// Service validates a checkout form and, on success, simulates payment
// processing and atomically clears the session's cart. No real payment
// gateway is contacted.
type Service interface {
	Submit(ctx context.Context, store *cart.Store, form Form) (*Confirmation, FieldErrors, error)
}

type service struct {
	processingDelay time.Duration
}

func NewService(processingDelay time.Duration) Service {
	return &service{processingDelay: processingDelay}
}

func (s *service) Submit(ctx context.Context, store *cart.Store, form Form) (*Confirmation, FieldErrors, error) {
	if fieldErrs := form.Validate(); fieldErrs != nil {
		return nil, fieldErrs, nil
	}

	// Simulated processing delay; cancellable by the caller.
	if s.processingDelay > 0 {
		timer := time.NewTimer(s.processingDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}

	totals := store.Totals()
	store.Clear(ctx)

	confirmation := &Confirmation{
		OrderNumber: generateOrderNumber(),
		Totals:      totals,
	}

	logger.FromCtx(ctx).Info("checkout completed",
		zap.String("order_number", confirmation.OrderNumber),
		zap.Float64("total", totals.Total),
	)

	return confirmation, nil, nil
}

// generateOrderNumber builds a unique, sortable order reference from the
// current UTC time and a 4-digit cryptographic random suffix.
func generateOrderNumber() string {
	now := time.Now().UTC()

	datePart := now.Format("20060102-150405")
	millis := now.Nanosecond() / int(time.Millisecond)

	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		// fallback: time-based entropy
		n = big.NewInt(now.UnixNano() % 10000)
	}

	return fmt.Sprintf(
		"ORD-%s-%03d-%04d",
		datePart,
		millis,
		n.Int64(),
	)
}
