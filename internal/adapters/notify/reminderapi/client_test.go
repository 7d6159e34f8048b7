package reminderapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petcheck/internal/ports/notify"
)

func TestClient_CreateReminder_Payload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != remindersPath || r.Header.Get("X-Api-Key") != "k1" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	minutes := 30
	err = c.CreateReminder(context.Background(), notify.ReminderRequest{
		TutorID:        "tutor-1",
		Title:          "Administer A – 1",
		DueAt:          time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		AdvanceEnabled: true,
		AdvanceMinutes: &minutes,
	})
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}

	if got["tutor_id"] != "tutor-1" || got["titulo"] != "Administer A – 1" || got["notificar_antecedencia"] != true {
		t.Fatalf("unexpected payload: %v", got)
	}
	if got["minutos_antecedencia"] != float64(30) || got["data_lembrete"] != "2026-06-01T12:00:00Z" {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestClient_CreateReminder_OmitsMinutesWhenDisabled(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	if err := c.CreateReminder(context.Background(), notify.ReminderRequest{TutorID: "t", Title: "x"}); err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	if _, ok := got["minutos_antecedencia"]; ok {
		t.Fatalf("minutos_antecedencia must be omitted: %v", got)
	}
}

func TestClient_CreateReminder_Errors(t *testing.T) {
	status := http.StatusForbidden
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	defer srv.Close()

	c, _ := NewClient(Config{BaseURL: srv.URL})
	req := notify.ReminderRequest{TutorID: "t", Title: "x"}

	if err := c.CreateReminder(context.Background(), req); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	status = http.StatusServiceUnavailable
	if err := c.CreateReminder(context.Background(), req); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
