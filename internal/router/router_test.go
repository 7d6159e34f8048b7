package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"petcheck/internal/adapters/auth/jwtauth"
	"petcheck/internal/ports/notify"
	"petcheck/internal/router"
)

type recordingNotifier struct {
	mu   sync.Mutex
	reqs []notify.ReminderRequest
}

func (n *recordingNotifier) CreateReminder(_ context.Context, req notify.ReminderRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reqs = append(n.reqs, req)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.reqs)
}

func TestHTTP_PetDelete_OtherTutorIsNotFound(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "tutor-1", map[string]any{"nome": "Milo", "especie": "cão"})

	st, body := doReq(t, ts.URL, http.MethodDelete, "/pets/"+petID, "tutor-2", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign pet, got %d body=%s", st, body)
	}

	st, _ = doReq(t, ts.URL, http.MethodGet, "/pets/"+petID, "tutor-1", nil)
	if st != http.StatusOK {
		t.Fatalf("pet must survive foreign delete, got %d", st)
	}

	st, body = doReq(t, ts.URL, http.MethodDelete, "/pets/"+petID, "tutor-1", nil)
	if st != http.StatusOK || !strings.Contains(string(body), `"success":true`) {
		t.Fatalf("owner delete: %d body=%s", st, body)
	}
}

func TestHTTP_Unauthenticated(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	for _, path := range []string{"/pets", "/reminders", "/dashboard", "/profile/notify-time"} {
		st, _ := doReq(t, ts.URL, http.MethodGet, path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, st)
		}
	}
}

func TestHTTP_Preferences_SaveAndRead(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, http.MethodPost, "/profile/notify-time", "tutor-1", map[string]any{
		"label":    "08:30",
		"consulta": map[string]any{"enabled": true, "minutes": 120},
	})
	if st != http.StatusOK {
		t.Fatalf("update: %d body=%s", st, body)
	}

	st, body = doReq(t, ts.URL, http.MethodGet, "/profile/notify-time", "tutor-1", nil)
	if st != http.StatusOK {
		t.Fatalf("get: %d body=%s", st, body)
	}
	var got struct {
		NotifyMinutes         *int    `json:"notify_minutes"`
		NotifyLabel           *string `json:"notify_label"`
		ConsultAdvanceEnabled bool    `json:"consulta_adv_enabled"`
		ConsultAdvanceMinutes *int    `json:"consulta_adv_minutes"`
	}
	mustJSON(t, body, &got)
	if got.NotifyMinutes == nil || *got.NotifyMinutes != 510 || got.NotifyLabel == nil || *got.NotifyLabel != "08:30" {
		t.Fatalf("unexpected notify time: %s", body)
	}
	if !got.ConsultAdvanceEnabled || got.ConsultAdvanceMinutes == nil || *got.ConsultAdvanceMinutes != 120 {
		t.Fatalf("unexpected consulta advance: %s", body)
	}

	st, _ = doReq(t, ts.URL, http.MethodPost, "/profile/notify-time", "tutor-1", map[string]any{"label": "25:00"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid label, got %d", st)
	}
}

func TestHTTP_Medication_SchedulesDailyReminder(t *testing.T) {
	n := &recordingNotifier{}
	ts := httptest.NewServer(router.NewRouter(router.Options{Notifier: n}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "tutor-1", map[string]any{"nome": "Luna", "especie": "gato"})
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute)

	st, body := doReq(t, ts.URL, http.MethodPost, "/medications", "tutor-1", map[string]any{
		"pet_id":           petID,
		"nome_medicamento": "Amoxicilina",
		"dosagem":          "1 comprimido",
		"frequencia":       "2x ao dia",
		"data_inicio":      start.Format(time.RFC3339),
	})
	if st != http.StatusCreated {
		t.Fatalf("create medication: %d body=%s", st, body)
	}

	st, body = doReq(t, ts.URL, http.MethodGet, "/reminders", "tutor-1", nil)
	if st != http.StatusOK {
		t.Fatalf("list reminders: %d body=%s", st, body)
	}
	var items []struct {
		Title          string `json:"titulo"`
		Recurrence     string `json:"recorrencia"`
		Source         string `json:"origem"`
		AdvanceMinutes *int   `json:"minutos_antecedencia"`
		DueAt          string `json:"data_lembrete"`
	}
	mustJSON(t, body, &items)
	if len(items) != 1 {
		t.Fatalf("expected 1 reminder, got %s", body)
	}
	rem := items[0]
	if rem.Recurrence != "daily" || rem.Source != "medication" || !strings.Contains(rem.Title, "Amoxicilina") {
		t.Fatalf("unexpected reminder: %+v", rem)
	}
	if rem.AdvanceMinutes == nil || *rem.AdvanceMinutes != 30 {
		t.Fatalf("medication reminders notify 30 minutes before, got %+v", rem.AdvanceMinutes)
	}
	if n.count() != 1 {
		t.Fatalf("expected 1 remote notification, got %d", n.count())
	}

	// Otro tutor no ve el lembrete.
	_, body = doReq(t, ts.URL, http.MethodGet, "/reminders", "tutor-2", nil)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("foreign tutor must not see reminders, got %s", body)
	}
}

func TestHTTP_Reminders_CalendarFeed(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	due := time.Now().UTC().Add(72 * time.Hour).Truncate(time.Minute)
	st, body := doReq(t, ts.URL, http.MethodPost, "/reminders", "tutor-1", map[string]any{
		"titulo":                 "Banho",
		"data_lembrete":          due.Format(time.RFC3339),
		"tipo":                   "outro",
		"recorrencia":            "semanal",
		"notificar_antecedencia": true,
		"minutos_antecedencia":   90,
	})
	if st != http.StatusCreated {
		t.Fatalf("create reminder: %d body=%s", st, body)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/reminders/calendar.ics", nil)
	req.Header.Set("X-Debug-User-ID", "tutor-1")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	defer res.Body.Close()
	ics, _ := io.ReadAll(res.Body)

	if res.StatusCode != http.StatusOK || !strings.HasPrefix(res.Header.Get("Content-Type"), "text/calendar") {
		t.Fatalf("unexpected calendar response: %d %q", res.StatusCode, res.Header.Get("Content-Type"))
	}
	for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:Banho", "FREQ=WEEKLY", "TRIGGER:-PT90M"} {
		if !strings.Contains(string(ics), want) {
			t.Fatalf("calendar missing %q:\n%s", want, ics)
		}
	}
}

func TestHTTP_Dashboard(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "tutor-1", map[string]any{"nome": "Thor"})
	today := time.Now().UTC()

	st, body := doReq(t, ts.URL, http.MethodPost, "/vaccines", "tutor-1", map[string]any{
		"pet_id":            petID,
		"nome_vacina":       "V10",
		"data_aplicacao":    today.AddDate(-1, 0, 0).Format("2006-01-02"),
		"data_proxima_dose": today.AddDate(0, 0, -5).Format("2006-01-02"),
	})
	if st != http.StatusCreated {
		t.Fatalf("create vaccine: %d body=%s", st, body)
	}

	st, body = doReq(t, ts.URL, http.MethodPost, "/consultations", "tutor-1", map[string]any{
		"pet_id":        petID,
		"tipo_consulta": "rotina",
		"data_consulta": today.Add(24 * time.Hour).Format(time.RFC3339),
	})
	if st != http.StatusCreated {
		t.Fatalf("create consultation: %d body=%s", st, body)
	}

	st, body = doReq(t, ts.URL, http.MethodGet, "/dashboard", "tutor-1", nil)
	if st != http.StatusOK {
		t.Fatalf("dashboard: %d body=%s", st, body)
	}
	var got struct {
		Pets          []map[string]any `json:"pets"`
		Consultations []map[string]any `json:"proximas_consultas"`
		Vaccines      []struct {
			Status string `json:"status"`
		} `json:"alertas_vacinas"`
	}
	mustJSON(t, body, &got)
	if len(got.Pets) != 1 || len(got.Consultations) != 1 {
		t.Fatalf("unexpected dashboard: %s", body)
	}
	if len(got.Vaccines) != 1 || got.Vaccines[0].Status != "overdue" {
		t.Fatalf("expected overdue vaccine alert: %s", body)
	}
}

func TestHTTP_Vaccine_RescheduleAndDeleteCloseReminders(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "tutor-1", map[string]any{"nome": "Thor"})
	today := time.Now().UTC()
	vaccine := func(nextDoseDays int) map[string]any {
		return map[string]any{
			"pet_id":            petID,
			"nome_vacina":       "V10",
			"data_aplicacao":    today.Format("2006-01-02"),
			"data_proxima_dose": today.AddDate(0, 0, nextDoseDays).Format("2006-01-02"),
		}
	}
	activeReminders := func() []struct {
		DueAt string `json:"data_lembrete"`
	} {
		t.Helper()
		st, body := doReq(t, ts.URL, http.MethodGet, "/reminders?status=active", "tutor-1", nil)
		if st != http.StatusOK {
			t.Fatalf("list reminders: %d body=%s", st, body)
		}
		var items []struct {
			DueAt string `json:"data_lembrete"`
		}
		mustJSON(t, body, &items)
		return items
	}

	st, body := doReq(t, ts.URL, http.MethodPost, "/vaccines", "tutor-1", vaccine(10))
	if st != http.StatusCreated {
		t.Fatalf("create vaccine: %d body=%s", st, body)
	}
	var created struct {
		ID string `json:"id"`
	}
	mustJSON(t, body, &created)

	st, body = doReq(t, ts.URL, http.MethodPut, "/vaccines/"+created.ID, "tutor-1", vaccine(20))
	if st != http.StatusOK {
		t.Fatalf("update vaccine: %d body=%s", st, body)
	}
	items := activeReminders()
	want := today.AddDate(0, 0, 20).Format("2006-01-02")
	if len(items) != 1 || !strings.HasPrefix(items[0].DueAt, want) {
		t.Fatalf("expected only the %s reminder active, got %+v", want, items)
	}

	st, body = doReq(t, ts.URL, http.MethodDelete, "/vaccines/"+created.ID, "tutor-1", nil)
	if st >= 300 {
		t.Fatalf("delete vaccine: %d body=%s", st, body)
	}
	if items := activeReminders(); len(items) != 0 {
		t.Fatalf("deleted vaccine must leave no active reminders, got %+v", items)
	}
}

func TestHTTP_WithVerifier_IgnoresDebugHeader(t *testing.T) {
	secret := "test-secret"
	ts := httptest.NewServer(router.NewRouter(router.Options{Verifier: jwtauth.NewVerifier(secret)}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, http.MethodGet, "/pets", "tutor-1", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("debug header must be ignored with a verifier, got %d", st)
	}

	token, err := jwtauth.Sign(secret, jwtauth.Claims{TutorID: "tutor-1", Email: "a@b.c"}, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/pets", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %d", res.StatusCode)
	}
}

func createPet(t *testing.T, baseURL, tutorID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, http.MethodPost, "/pets", tutorID, payload)
	if st != http.StatusCreated {
		t.Fatalf("create pet: %d body=%s", st, body)
	}
	var out struct {
		ID string `json:"id"`
	}
	mustJSON(t, body, &out)
	if out.ID == "" {
		t.Fatalf("create pet: empty id, body=%s", body)
	}
	return out.ID
}

func doReq(t *testing.T, baseURL, method, path, tutorID string, payload any) (int, []byte) {
	t.Helper()

	var r io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tutorID != "" {
		req.Header.Set("X-Debug-User-ID", tutorID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, body
}

func mustJSON(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
}
