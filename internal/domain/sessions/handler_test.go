package sessions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"petcheck/internal/middleware"
	"petcheck/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

type testAuthn struct{}

func (testAuthn) Login(_ context.Context, c auth.Credentials) (auth.Session, error) {
	if c.Password != "123456" {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	return auth.Session{TutorID: "tutor-1", Email: c.Email, Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type testStore struct {
	revoked map[string]bool
}

func (s *testStore) Revoke(_ context.Context, token string, _ time.Time) error {
	s.revoked[token] = true
	return nil
}

func (s *testStore) IsRevoked(_ context.Context, token string) (bool, error) {
	return s.revoked[token], nil
}

func TestLogin_SetsCookie(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(testAuthn{}, &testStore{revoked: map[string]bool{}}), CookieOptions{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@example.com","senha":"123456"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookie || cookies[0].Value != "tok-1" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@example.com","senha":"nope"}`))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogin_NotConfigured(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(nil, nil), CookieOptions{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.c","senha":"x"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	store := &testStore{revoked: map[string]bool{}}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := middleware.WithSession(req.Context(), auth.Session{TutorID: "tutor-1", Token: "tok-1"})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	RegisterRoutes(r, NewService(testAuthn{}, store), CookieOptions{Secure: true})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !store.revoked["tok-1"] {
		t.Fatalf("token must be revoked")
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 || !cookies[0].Secure {
		t.Fatalf("cookie must be cleared: %+v", cookies)
	}
}

func TestMe_RequiresSession(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, NewService(nil, nil), CookieOptions{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
