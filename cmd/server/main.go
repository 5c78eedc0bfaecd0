package main

import (
	"context"
	"net/http"
	"path/filepath"

	"storefront-be/internal/catalog"
	"storefront-be/internal/checkout"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/kvstore"
	"storefront-be/internal/logger"
	"storefront-be/internal/notify"
	"storefront-be/internal/promo"
	"storefront-be/internal/session"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	log := logger.L()
	ctx := context.Background()

	var kv kvstore.Store
	if cfg.UseSQLStore() {
		database, err := db.Connect(cfg)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer database.Close()

		sqlStore := kvstore.NewSQLStore(database)
		if err := sqlStore.Init(ctx); err != nil {
			log.Fatal("failed to initialize kv table", zap.Error(err))
		}
		kv = sqlStore
		log.Info("using postgres-backed kv store", zap.String("host", cfg.DBHost))
	} else {
		fileStore, err := kvstore.OpenFile(filepath.Join(cfg.DataDir, "store.json"))
		if err != nil {
			log.Fatal("failed to open kv store", zap.Error(err))
		}
		kv = fileStore
		log.Info("using file-backed kv store", zap.String("dir", cfg.DataDir))
	}

	source := catalog.NewClient(cfg.CatalogBaseURL, cfg.CatalogTimeout)
	notifier := notify.NewZapNotifier(log)
	registry := promo.DefaultRegistry()
	sessions := session.NewManager(kv, registry, notifier, cfg.TaxRate)
	checkoutSvc := checkout.NewService(cfg.CheckoutDelay)

	handler := httpapi.New(cfg, source, sessions, checkoutSvc)

	log.Info("storefront server running", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, handler.Router()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
