package jwtauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"petcheck/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

// Claims del token que emite el proveedor de login (HS256, secreto compartido).
type Claims struct {
	TutorID string `json:"user_id"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"nome,omitempty"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.Verifier validando el JWT localmente.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(secret))}
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Session, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Session{}, auth.ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Session{}, auth.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return auth.Session{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return auth.Session{}, auth.ErrInvalidToken
	}

	tutorID := strings.TrimSpace(claims.TutorID)
	if tutorID == "" {
		tutorID = strings.TrimSpace(claims.Subject)
	}
	if tutorID == "" {
		return auth.Session{}, fmt.Errorf("%w: missing user id", auth.ErrInvalidToken)
	}

	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return auth.Session{
		TutorID:   tutorID,
		Email:     claims.Email,
		Name:      claims.Name,
		Token:     token,
		ExpiresAt: exp,
	}, nil
}

// Sign emite un token con el mismo formato. Lo usan tests y el login de dev.
func Sign(secret string, c Claims, ttl time.Duration, now time.Time) (string, error) {
	if c.Subject == "" {
		c.Subject = c.TutorID
	}
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}
