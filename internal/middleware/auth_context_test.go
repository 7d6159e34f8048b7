package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petcheck/internal/ports/auth"
)

type fakeVerifier struct {
	valid map[string]string // token -> tutor
}

func (f fakeVerifier) Verify(_ context.Context, token string) (auth.Session, error) {
	tutor, ok := f.valid[token]
	if !ok {
		return auth.Session{}, errors.New("invalid token")
	}
	return auth.Session{TutorID: tutor}, nil
}

type fakeStore struct {
	revoked map[string]bool
}

func (f fakeStore) Revoke(_ context.Context, token string, _ time.Time) error {
	f.revoked[token] = true
	return nil
}

func (f fakeStore) IsRevoked(_ context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

func TestAuthContext_DevHeader(t *testing.T) {
	mw := AuthContext(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "tutor-1")

	var got string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		got = s.TutorID
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "tutor-1" {
		t.Fatalf("expected tutor-1, got %q", got)
	}
}

func TestAuthContext_BearerAndCookie(t *testing.T) {
	v := fakeVerifier{valid: map[string]string{"tok-a": "tutor-a", "tok-b": "tutor-b"}}
	mw := AuthContext(v, fakeStore{revoked: map[string]bool{}})

	capture := func(req *http.Request) string {
		var got string
		h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, _ := GetSession(r.Context())
			got = s.TutorID
		}))
		h.ServeHTTP(httptest.NewRecorder(), req)
		return got
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-a")
	if got := capture(req); got != "tutor-a" {
		t.Fatalf("bearer: expected tutor-a, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok-b"})
	if got := capture(req); got != "tutor-b" {
		t.Fatalf("cookie: expected tutor-b, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer unknown")
	if got := capture(req); got != "" {
		t.Fatalf("invalid token must not create session, got %q", got)
	}
}

func TestAuthContext_RevokedTokenIgnored(t *testing.T) {
	v := fakeVerifier{valid: map[string]string{"tok-a": "tutor-a"}}
	store := fakeStore{revoked: map[string]bool{"tok-a": true}}
	mw := AuthContext(v, store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-a")

	var has bool
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, has = GetSession(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if has {
		t.Fatalf("revoked token must not create a session")
	}
}
