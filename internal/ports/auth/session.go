package auth

import (
	"context"
	"time"
)

// Session es la sesión explícita del tutor autenticado.
// Viaja en el context del request; no hay estado global.
type Session struct {
	TutorID   string
	Email     string
	Name      string
	Token     string
	ExpiresAt time.Time
}

// Verifier valida un token y devuelve la sesión o error.
type Verifier interface {
	Verify(ctx context.Context, token string) (Session, error)
}

// SessionStore guarda tokens revocados (logout) hasta que expiran.
type SessionStore interface {
	Revoke(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Credentials del login (email/senha del formulario).
type Credentials struct {
	Email    string
	Password string
}

// Authenticator delega el login al proveedor de identidad.
type Authenticator interface {
	Login(ctx context.Context, c Credentials) (Session, error)
}
