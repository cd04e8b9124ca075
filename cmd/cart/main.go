package main

import (
	"context"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniCart/internal/cart"
	"MiniCart/internal/slot"
	"MiniCart/pkg/kit"
)

const recentNotifications = 50

func main() {
	service := "cart"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	port := getenv("PORT", "8084")
	catalogURL := getenv("CATALOG_URL", "http://localhost:8082")
	stockURL := getenv("STOCK_URL", catalogURL)

	sl, closeSlot, err := openSlot(ctx, log)
	if err != nil {
		log.Fatal("open cart slot failed", zap.Error(err))
	}
	defer closeSlot()

	reg := prometheus.NewRegistry()
	rec := cart.NewRecorder(recentNotifications)

	store := cart.NewStore(ctx, cart.Deps{
		Catalog:  cart.NewCatalogClient(catalogURL),
		Stock:    cart.NewStockClient(stockURL),
		Slot:     sl,
		Key:      getenv("SLOT_KEY", cart.DefaultKey),
		Notifier: cart.MultiNotifier{rec, cart.LogNotifier{Log: log}},
		Metrics:  cart.NewMetrics(reg),
		Log:      log,
	})
	log.Info("cart loaded", zap.Int("lines", len(store.Cart())))

	h := cart.NewHandler(&cart.Server{Store: store, Recorder: rec, Log: log}, cart.HTTPDeps{
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

// openSlot picks the durable backend from SLOT_BACKEND (memory, postgres, redis).
func openSlot(ctx context.Context, log *zap.Logger) (slot.Slot, func(), error) {
	backend := getenv("SLOT_BACKEND", "memory")
	log.Info("cart slot backend", zap.String("backend", backend))

	switch backend {
	case "postgres":
		db, err := kit.OpenPostgres(ctx, os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, nil, err
		}
		return slot.NewPostgresSlot(db), func() { _ = db.Close() }, nil

	case "redis":
		redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
		if err != nil {
			return nil, nil, err
		}
		client, err := kit.ConnectRedis(ctx, getenv("REDIS_ADDR", "localhost:6379"), os.Getenv("REDIS_PASSWORD"), redisDB)
		if err != nil {
			return nil, nil, err
		}
		return slot.NewRedisSlot(client, getenv("REDIS_PREFIX", "minicart:")), func() { _ = client.Close() }, nil

	default:
		if backend != "memory" {
			log.Warn("unknown slot backend, using memory", zap.String("backend", backend))
		}
		return slot.NewMemSlot(), func() {}, nil
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
