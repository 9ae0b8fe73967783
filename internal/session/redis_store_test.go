package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
)

func TestRedisStoreLifecycle(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	store := NewRedisStore(rdb)
	now := time.Now()

	s := Session{ID: "abc", UserID: 9, Role: access.RoleClient, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != 9 || got.Role != access.RoleClient {
		t.Fatalf("unexpected session: %+v", got)
	}
	if ttl := srv.TTL(keyPrefix + "abc"); ttl <= 0 || ttl > time.Hour {
		t.Fatalf("unexpected ttl: %v", ttl)
	}

	srv.FastForward(2 * time.Hour)
	if _, err := store.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	store := NewRedisStore(rdb)
	m := NewManager(store, "secret", time.Hour)

	token, s, err := m.Open(ctx, 3, access.RoleAdmin)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !srv.Exists(keyPrefix + s.ID) {
		t.Fatal("session key missing")
	}

	if err := m.Close(ctx, token); err != nil {
		t.Fatalf("close: %v", err)
	}
	if srv.Exists(keyPrefix + s.ID) {
		t.Fatal("session key should be gone")
	}
	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("delete of missing key: %v", err)
	}
}

func TestNewRedisClientRejectsBadURL(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), "://nope"); err == nil {
		t.Fatal("expected parse error")
	}
}
