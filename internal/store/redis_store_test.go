package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"signin/internal/domain"
	"signin/internal/store"
)

func newRedisStore(t *testing.T) (*store.RedisTokenStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return store.NewRedisTokenStore(rdb, ""), mr
}

func TestRedisTokenStore_SaveReadClear(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)

	if _, ok, err := s.Read(ctx, domain.AccessTokenKey); err != nil || ok {
		t.Fatalf("read empty: ok=%v err=%v", ok, err)
	}
	if err := s.Save(ctx, domain.AccessTokenKey, "T123"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, err := mr.Get("signin:ACCESS_TOKEN"); err != nil || got != "T123" {
		t.Fatalf("raw redis value = %q err=%v", got, err)
	}
	got, ok, err := s.Read(ctx, domain.AccessTokenKey)
	if err != nil || !ok || got != "T123" {
		t.Fatalf("got=%q ok=%v err=%v", got, ok, err)
	}
	if err := s.Clear(ctx, domain.AccessTokenKey); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if mr.Exists("signin:ACCESS_TOKEN") {
		t.Fatal("key still present after clear")
	}
}

func TestRedisTokenStore_UnavailableIsStorageFailure(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStore(t)
	mr.Close()

	err := s.Save(ctx, domain.AccessTokenKey, "T123")
	f, ok := domain.AsFailure(err)
	if !ok || f.Kind != domain.StorageFailure {
		t.Fatalf("err=%v, want storage failure", err)
	}
	if _, _, err := s.Read(ctx, domain.AccessTokenKey); err == nil {
		t.Fatal("read from closed redis should fail")
	}
}
