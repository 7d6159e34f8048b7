package memory

import (
	"context"
	"testing"
	"time"
)

func TestStore_ExpiresWithToken(t *testing.T) {
	s := New()
	now := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	_ = s.Revoke(ctx, "tok", now.Add(time.Hour))
	if revoked, _ := s.IsRevoked(ctx, "tok"); !revoked {
		t.Fatalf("expected revoked")
	}

	now = now.Add(2 * time.Hour)
	if revoked, _ := s.IsRevoked(ctx, "tok"); revoked {
		t.Fatalf("revocation must expire with the token")
	}
}
