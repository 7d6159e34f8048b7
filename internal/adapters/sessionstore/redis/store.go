package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "petcheck:revoked:"

// Store implementa auth.SessionStore con claves que expiran junto con el token.
type Store struct {
	rdb *goredis.Client
	now func() time.Time
}

func New(rdb *goredis.Client) *Store {
	return &Store{rdb: rdb, now: time.Now}
}

// Open parsea REDIS_URL (redis://...) y hace ping.
func Open(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(strings.TrimSpace(url))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// El token no se guarda en claro.
func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (s *Store) Revoke(ctx context.Context, token string, until time.Time) error {
	ttl := until.Sub(s.now())
	if until.IsZero() || ttl <= 0 {
		// Sin expiración conocida: se guarda un día.
		ttl = 24 * time.Hour
	}
	return s.rdb.Set(ctx, key(token), "1", ttl).Err()
}

func (s *Store) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := s.rdb.Get(ctx, key(token)).Result()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
