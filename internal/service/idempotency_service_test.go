package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRedisStore(t *testing.T) (IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisIdempotencyStore(client, newTestLogger()), mr
}

func TestIdempotencyStores_FirstResponseWins(t *testing.T) {
	redisStore, _ := newTestRedisStore(t)
	stores := map[string]IdempotencyStore{
		"memory": NewMemoryIdempotencyStore(),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			got, err := store.Get(ctx, "k1")
			if err != nil || got != nil {
				t.Fatalf("expected empty store, got %+v, %v", got, err)
			}

			first := &IdempotentResponse{StatusCode: 201, ContentType: "application/json", Body: []byte(`{"id":"apt-1"}`)}
			second := &IdempotentResponse{StatusCode: 201, ContentType: "application/json", Body: []byte(`{"id":"apt-2"}`)}
			if err := store.Save(ctx, "k1", first, time.Hour); err != nil {
				t.Fatalf("save: %v", err)
			}
			if err := store.Save(ctx, "k1", second, time.Hour); err != nil {
				t.Fatalf("second save: %v", err)
			}

			got, err = store.Get(ctx, "k1")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got == nil || got.StatusCode != 201 || got.ContentType != "application/json" || string(got.Body) != `{"id":"apt-1"}` {
				t.Fatalf("expected first response, got %+v", got)
			}

			if other, _ := store.Get(ctx, "k2"); other != nil {
				t.Fatalf("keys must not leak into each other, got %+v", other)
			}
		})
	}
}

func TestMemoryIdempotencyStore_Expires(t *testing.T) {
	store := NewMemoryIdempotencyStore().(*memoryIdempotencyStore)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	if err := store.Save(ctx, "k", &IdempotentResponse{StatusCode: 201}, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	now = now.Add(59 * time.Second)
	if got, _ := store.Get(ctx, "k"); got == nil {
		t.Fatal("expected response before ttl")
	}

	now = now.Add(time.Second)
	if got, _ := store.Get(ctx, "k"); got != nil {
		t.Fatalf("expected expiry at ttl, got %+v", got)
	}

	if err := store.Save(ctx, "k", &IdempotentResponse{StatusCode: 200}, time.Minute); err != nil {
		t.Fatalf("save after expiry: %v", err)
	}
	if got, _ := store.Get(ctx, "k"); got == nil || got.StatusCode != 200 {
		t.Fatalf("expected key to be reusable after expiry, got %+v", got)
	}
}

func TestMemoryIdempotencyStore_ReturnsCopies(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	ctx := context.Background()
	body := []byte("original")

	if err := store.Save(ctx, "k", &IdempotentResponse{StatusCode: 201, Body: body}, time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	body[0] = 'X'

	got, _ := store.Get(ctx, "k")
	got.Body[1] = 'Y'

	again, _ := store.Get(ctx, "k")
	if string(again.Body) != "original" {
		t.Fatalf("stored body was mutated: %q", again.Body)
	}
}

func TestRedisIdempotencyStore_UsesTTL(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "k", &IdempotentResponse{StatusCode: 201}, time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if ttl := mr.TTL(idempotencyKeyPrefix + "k"); ttl != time.Hour {
		t.Fatalf("expected 1h ttl, got %v", ttl)
	}

	mr.FastForward(time.Hour)
	if got, err := store.Get(ctx, "k"); err != nil || got != nil {
		t.Fatalf("expected key to expire, got %+v, %v", got, err)
	}
}

func TestRedisIdempotencyStore_CorruptValue(t *testing.T) {
	store, mr := newTestRedisStore(t)

	if err := mr.Set(idempotencyKeyPrefix+"k", "not-json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := store.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRedisIdempotencyStore_Unavailable(t *testing.T) {
	store, mr := newTestRedisStore(t)
	mr.Close()

	if _, err := store.Get(context.Background(), "k"); err == nil {
		t.Fatal("expected error when redis is down")
	}
}
