package dedupe

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRedisStore_ClaimOnce(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb, err := NewRedis(addr)
	if err != nil {
		t.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	s := NewRedisStore(rdb, time.Minute)
	ctx := context.Background()
	id := uuid.NewString()
	defer s.Release(ctx, id)

	ok, err := s.Claim(ctx, id)
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}
	ok, err = s.Claim(ctx, id)
	if err != nil || ok {
		t.Fatalf("second claim should fail: ok=%v err=%v", ok, err)
	}
	if err := s.Release(ctx, id); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, _ = s.Claim(ctx, id)
	if !ok {
		t.Fatalf("claim after release should succeed")
	}
}

func TestNewRedisStore_DefaultTTL(t *testing.T) {
	s := NewRedisStore(nil, 0)
	if s.ttl != 24*time.Hour {
		t.Fatalf("expected default ttl, got %v", s.ttl)
	}
}
