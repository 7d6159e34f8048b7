package memory

import (
	"context"
	"sync"
	"time"
)

// Store guarda tokens revocados en memoria. Para dev y tests.
type Store struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func New() *Store {
	return &Store{
		revoked: map[string]time.Time{},
		now:     time.Now,
	}
}

func (s *Store) Revoke(_ context.Context, token string, until time.Time) error {
	if until.IsZero() {
		until = s.now().Add(24 * time.Hour)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = until
	return nil
}

func (s *Store) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.revoked[token]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, token)
		return false, nil
	}
	return true, nil
}
