package middleware

import (
	"context"
	"net/http"
	"strings"

	"petcheck/internal/ports/auth"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionCookie es la cookie donde /auth/login deja el token.
const SessionCookie = "petcheck_session"

// AuthContext:
//   - Si verifier == nil => modo dev: X-Debug-User-ID arma la sesión.
//   - Si no, toma el token de Authorization: Bearer o de la cookie de sesión,
//     lo verifica y descarta los revocados en store (si hay store).
//   - Sin sesión el request sigue igual; cada handler decide el 401.
func AuthContext(verifier auth.Verifier, store auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					s := auth.Session{TutorID: uid, Token: "debug:" + uid}
					next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := tokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			s, err := verifier.Verify(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if store != nil {
				revoked, err := store.IsRevoked(r.Context(), token)
				if err != nil || revoked {
					next.ServeHTTP(w, r)
					return
				}
			}

			s.Token = token
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

func WithSession(ctx context.Context, s auth.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func GetSession(ctx context.Context) (auth.Session, bool) {
	s, ok := ctx.Value(sessionKey).(auth.Session)
	if !ok || strings.TrimSpace(s.TutorID) == "" {
		return auth.Session{}, false
	}
	return s, true
}

func tokenFromRequest(r *http.Request) string {
	if t := bearerToken(r.Header.Get("Authorization")); t != "" {
		return t
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
