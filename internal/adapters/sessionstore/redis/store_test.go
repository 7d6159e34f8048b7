package redis

import (
	"context"
	"os"
	"testing"
	"time"
)

// Necesita un Redis real: REDIS_TEST_URL=redis://localhost:6379/15
func TestStore_RevokeAndCheck(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	ctx := context.Background()
	rdb, err := Open(ctx, url)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rdb.Close()

	s := New(rdb)
	tok := "tok-" + time.Now().Format(time.RFC3339Nano)

	if revoked, err := s.IsRevoked(ctx, tok); err != nil || revoked {
		t.Fatalf("fresh token: revoked=%v err=%v", revoked, err)
	}
	if err := s.Revoke(ctx, tok, time.Now().Add(time.Minute)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if revoked, err := s.IsRevoked(ctx, tok); err != nil || !revoked {
		t.Fatalf("after revoke: revoked=%v err=%v", revoked, err)
	}
	_ = rdb.Del(ctx, key(tok)).Err()
}

func TestKey_DoesNotContainToken(t *testing.T) {
	k := key("secret-token")
	if len(k) != len(keyPrefix)+64 {
		t.Fatalf("unexpected key %q", k)
	}
}
