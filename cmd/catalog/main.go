package main

import (
	"context"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCart/internal/catalog"
	"MiniCart/pkg/kit"
)

func main() {
	service := "catalog"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	port := getenv("PORT", "8082")

	var store catalog.Store = catalog.NewSeededMemStore()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := kit.OpenPostgres(ctx, dsn)
		if err != nil {
			log.Fatal("open postgres failed", zap.Error(err))
		}
		defer func() { _ = db.Close() }()
		store = catalog.NewPostgresStore(db)
	}

	reg := prometheus.NewRegistry()
	h := catalog.NewHandler(&catalog.Server{Store: store, Log: log}, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(ctx, ":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
