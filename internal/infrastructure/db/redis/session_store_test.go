package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mytime/console/internal/core/domain"
)

func TestSessionStore_KeyFormat(t *testing.T) {
	s := NewSessionStore(nil, "", 0)
	if got := s.key(domain.KeyAccessToken); got != "mytime:session:AccessToken" {
		t.Errorf("unexpected key %q", got)
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping Redis integration test")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Options{Addr: addr})
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	s := NewSessionStore(client, fmt.Sprintf("itest:%d", time.Now().UnixNano()), time.Minute)

	if _, err := s.Get(ctx, domain.KeyAccessToken); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := s.Set(ctx, domain.KeyAccessToken, "tok"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if v, err := s.Get(ctx, domain.KeyAccessToken); err != nil || v != "tok" {
		t.Fatalf("Get() = %q, %v", v, err)
	}
	if err := s.Remove(ctx, domain.KeyAccessToken); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if _, err := s.Get(ctx, domain.KeyAccessToken); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after remove, got %v", err)
	}
}
