package sessions

import (
	"context"
	"errors"
	"strings"
	"time"

	"petcheck/internal/ports/auth"
)

var ErrLoginUnavailable = errors.New("login provider not configured")

type Service struct {
	authn auth.Authenticator
	store auth.SessionStore
	now   func() time.Time
}

// NewService: authn y store pueden ser nil (modo dev con X-Debug-User-ID).
func NewService(authn auth.Authenticator, store auth.SessionStore) *Service {
	return &Service{
		authn: authn,
		store: store,
		now:   time.Now,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (auth.Session, error) {
	if s.authn == nil {
		return auth.Session{}, ErrLoginUnavailable
	}
	return s.authn.Login(ctx, auth.Credentials{Email: strings.TrimSpace(email), Password: password})
}

// Logout revoca el token hasta que expire. Las sesiones de dev no tienen token real.
func (s *Service) Logout(ctx context.Context, sess auth.Session) error {
	if s.store == nil || sess.Token == "" || strings.HasPrefix(sess.Token, "debug:") {
		return nil
	}
	return s.store.Revoke(ctx, sess.Token, sess.ExpiresAt)
}
