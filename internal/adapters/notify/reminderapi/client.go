package reminderapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"petcheck/internal/platform/httpclient"
	"petcheck/internal/ports/notify"
)

var (
	ErrNotConfigured = errors.New("reminder api not configured")
	ErrUnauthorized  = errors.New("reminder api unauthorized")
	ErrUpstream      = errors.New("reminder api upstream error")
)

const remindersPath = "/api/notifications/reminders"

type Config struct {
	BaseURL string
	APIKey  string

	// Opcional; por defecto "X-Api-Key".
	APIKeyHeader string

	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client implementa notify.Notifier contra el servicio de notificaciones.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, ErrNotConfigured
	}
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		Headers:   map[string]string{h: strings.TrimSpace(cfg.APIKey)},
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, err
	}
	return &Client{http: hc}, nil
}

func (c *Client) CreateReminder(ctx context.Context, req notify.ReminderRequest) error {
	if c == nil || c.http == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(req.TutorID) == "" {
		return errors.New("tutor_id required")
	}

	err := c.http.DoJSON(ctx, http.MethodPost, remindersPath, req, nil)
	if err == nil {
		return nil
	}

	var he *httpclient.HTTPError
	if errors.As(err, &he) && (he.StatusCode == http.StatusUnauthorized || he.StatusCode == http.StatusForbidden) {
		return ErrUnauthorized
	}
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
