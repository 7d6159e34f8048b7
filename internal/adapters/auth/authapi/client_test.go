package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"petcheck/internal/ports/auth"
)

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != loginPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["senha"] != "123456" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Credenciais inválidas"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"tok-1","user":{"id":"tutor-1","email":"ana@example.com","nome":"Ana"}}}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	sess, err := c.Login(context.Background(), auth.Credentials{Email: "ana@example.com", Password: "123456"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.TutorID != "tutor-1" || sess.Token != "tok-1" || sess.Name != "Ana" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	_, err = c.Login(context.Background(), auth.Credentials{Email: "ana@example.com", Password: "bad"})
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClient_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	_, err := c.Login(context.Background(), auth.Credentials{Email: "a@b.c", Password: "x"})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Config{}); !errors.Is(err, auth.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
