package authapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"petcheck/internal/platform/httpclient"
	"petcheck/internal/ports/auth"
)

var ErrUpstream = errors.New("auth api upstream error")

const loginPath = "/api/auth/login"

// Config del cliente de login. BaseURL viene de AUTH_BASE_URL.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client implementa auth.Authenticator contra la API de autenticación.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, auth.ErrNotConfigured
	}
	hc, err := httpclient.New(httpclient.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Name  string `json:"nome"`
		} `json:"user"`
	} `json:"data"`
}

func (c *Client) Login(ctx context.Context, cred auth.Credentials) (auth.Session, error) {
	if c == nil || c.http == nil {
		return auth.Session{}, auth.ErrNotConfigured
	}
	email := strings.TrimSpace(cred.Email)
	if email == "" || cred.Password == "" {
		return auth.Session{}, auth.ErrInvalidCredentials
	}

	var out loginResponse
	err := c.http.DoJSON(ctx, http.MethodPost, loginPath, loginRequest{Email: email, Password: cred.Password}, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusBadRequest) {
			return auth.Session{}, auth.ErrInvalidCredentials
		}
		return auth.Session{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if !out.Success {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	token := strings.TrimSpace(out.Data.Token)
	userID := strings.TrimSpace(out.Data.User.ID)
	if token == "" || userID == "" {
		return auth.Session{}, fmt.Errorf("%w: response missing token or user id", ErrUpstream)
	}

	return auth.Session{
		TutorID: userID,
		Email:   strings.TrimSpace(out.Data.User.Email),
		Name:    strings.TrimSpace(out.Data.User.Name),
		Token:   token,
	}, nil
}
