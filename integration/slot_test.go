//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"MiniCart/internal/slot"
	"MiniCart/pkg/kit"
)

func exerciseSlot(t *testing.T, ctx context.Context, s slot.Slot) {
	t.Helper()

	key := "e2e:" + time.Now().Format("150405.000000000")

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, ok, err := s.Get(ctx, key); err != nil || ok {
		t.Fatalf("fresh key: ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, key, []byte(`[{"id":1,"amount":1}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, key, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok || string(v) != `[]` {
		t.Fatalf("get: v=%s ok=%v err=%v", v, ok, err)
	}
}

func TestSlot_Redis(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := kit.ConnectRedis(ctx, getenv("E2E_REDIS_ADDR", "localhost:6379"), "", 0)
	if err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	defer client.Close()

	exerciseSlot(t, ctx, slot.NewRedisSlot(client, "minicart-test:"))
}

func TestSlot_Postgres(t *testing.T) {
	dsn := getenv("E2E_DATABASE_URL", "")
	if dsn == "" {
		t.Skip("E2E_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := kit.OpenPostgres(ctx, dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer db.Close()

	exerciseSlot(t, ctx, slot.NewPostgresSlot(db))
}
