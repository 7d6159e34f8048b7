package reminders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"petcheck/internal/domain/pets"
	"petcheck/internal/middleware"
	"petcheck/internal/platform/dates"

	"github.com/go-chi/chi/v5"
)

// PetChecker valida que el pet_id del formulario sea del tutor.
type PetChecker interface {
	Owns(ctx context.Context, tutorID, petID string) error
}

func RegisterRoutes(r chi.Router, svc *Service, petChecker PetChecker) {
	r.Route("/reminders", func(rr chi.Router) {
		rr.Post("/", createReminderHandler(svc, petChecker))
		rr.Get("/", listRemindersHandler(svc))
		rr.Get("/overview", overviewHandler(svc))
		rr.Get("/calendar.ics", calendarHandler(svc))
		rr.Get("/{reminderID}", getReminderHandler(svc))
		rr.Put("/{reminderID}", updateReminderHandler(svc, petChecker))
		rr.Post("/{reminderID}/done", doneReminderHandler(svc))
		rr.Delete("/{reminderID}", deleteReminderHandler(svc))
	})
}

type reminderRequest struct {
	PetID          *string  `json:"pet_id"`
	Title          string   `json:"titulo"`
	Description    string   `json:"descricao"`
	DueAt          string   `json:"data_lembrete"` // RFC3339 o datetime-local
	Kind           string   `json:"tipo"`
	Recurrence     string   `json:"recorrencia"`
	AdvanceEnabled bool     `json:"notificar_antecedencia"`
	AdvanceMinutes *float64 `json:"minutos_antecedencia"`
}

type reminderResponse struct {
	ID             string     `json:"id"`
	TutorID        string     `json:"tutor_id"`
	PetID          *string    `json:"pet_id"`
	Title          string     `json:"titulo"`
	Description    string     `json:"descricao"`
	DueAt          time.Time  `json:"data_lembrete"`
	Kind           Kind       `json:"tipo"`
	Status         Status     `json:"status"`
	Recurrence     Recurrence `json:"recorrencia"`
	AdvanceEnabled bool       `json:"notificar_antecedencia"`
	AdvanceMinutes *int       `json:"minutos_antecedencia"`
	Source         Source     `json:"origem"`
	SourceID       string     `json:"origem_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type overviewResponse struct {
	Overdue  []reminderResponse `json:"atrasados"`
	Today    []reminderResponse `json:"hoje"`
	Tomorrow []reminderResponse `json:"amanha"`
	ThisWeek []reminderResponse `json:"esta_semana"`
	Later    []reminderResponse `json:"proximos"`
}

// decodeForm convierte el body y valida el pet. Escribe la respuesta de error
// y devuelve ok=false si algo falla.
func decodeForm(w http.ResponseWriter, r *http.Request, tutorID string, petChecker PetChecker) (FormInput, bool) {
	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return FormInput{}, false
	}

	var due time.Time
	if strings.TrimSpace(req.DueAt) != "" {
		t, err := dates.ParseDateTime(req.DueAt, time.UTC)
		if err != nil {
			http.Error(w, "data_lembrete must be RFC3339 or YYYY-MM-DDTHH:MM", http.StatusBadRequest)
			return FormInput{}, false
		}
		due = t
	}

	if req.PetID != nil && strings.TrimSpace(*req.PetID) != "" && petChecker != nil {
		if err := petChecker.Owns(r.Context(), tutorID, strings.TrimSpace(*req.PetID)); err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return FormInput{}, false
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return FormInput{}, false
		}
	}

	return FormInput{
		PetID:          req.PetID,
		Title:          req.Title,
		Description:    req.Description,
		DueAt:          due,
		Kind:           req.Kind,
		Recurrence:     req.Recurrence,
		AdvanceEnabled: req.AdvanceEnabled,
		AdvanceMinutes: req.AdvanceMinutes,
	}, true
}

// createReminderHandler godoc
// @Summary Criar lembrete
// @Description Guarda el lembrete y avisa al servicio de notificaciones (best-effort).
// @Tags reminders
// @Accept json
// @Produce json
// @Param payload body reminderRequest true "Formulario; tipo/recorrencia aceptan los valores en portugués"
// @Success 201 {object} reminderResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /reminders [post]
func createReminderHandler(svc *Service, petChecker PetChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, ok := decodeForm(w, r, sess.TutorID, petChecker)
		if !ok {
			return
		}

		rem, err := svc.CreateFromForm(r.Context(), sess.TutorID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toReminderResponse(rem))
	}
}

// listRemindersHandler godoc
// @Summary Listar lembretes
// @Tags reminders
// @Produce json
// @Param status query string false "active|done (ativo|concluido)"
// @Param pet_id query string false "Filtra por pet"
// @Param from query string false "RFC3339"
// @Param to query string false "RFC3339"
// @Success 200 {array} reminderResponse
// @Router /reminders [get]
func listRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		f := ListFilter{PetID: strings.TrimSpace(q.Get("pet_id"))}
		if s := q.Get("status"); s != "" {
			st, ok := ParseStatus(s)
			if !ok {
				http.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
			f.Status = st
		}
		for key, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
			if s := q.Get(key); s != "" {
				t, err := dates.ParseDateTime(s, time.UTC)
				if err != nil {
					http.Error(w, "invalid "+key, http.StatusBadRequest)
					return
				}
				*dst = &t
			}
		}

		items, err := svc.List(r.Context(), sess.TutorID, f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toReminderResponses(items))
	}
}

// overviewHandler godoc
// @Summary Resumen de lembretes activos por día
// @Tags reminders
// @Produce json
// @Success 200 {object} overviewResponse
// @Router /reminders/overview [get]
func overviewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		ov, err := svc.Overview(r.Context(), sess.TutorID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, overviewResponse{
			Overdue:  toReminderResponses(ov.Overdue),
			Today:    toReminderResponses(ov.Today),
			Tomorrow: toReminderResponses(ov.Tomorrow),
			ThisWeek: toReminderResponses(ov.ThisWeek),
			Later:    toReminderResponses(ov.Later),
		})
	}
}

// calendarHandler godoc
// @Summary Feed iCalendar de lembretes activos
// @Tags reminders
// @Produce text/calendar
// @Success 200 {string} string "VCALENDAR"
// @Router /reminders/calendar.ics [get]
func calendarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.Active(r.Context(), sess.TutorID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := WriteCalendar(&buf, items, svc.now()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
		w.Header().Set("Content-Disposition", `inline; filename="petcheck.ics"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func getReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rem, err := svc.GetByID(r.Context(), sess.TutorID, chi.URLParam(r, "reminderID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toReminderResponse(rem))
	}
}

func updateReminderHandler(svc *Service, petChecker PetChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		in, ok := decodeForm(w, r, sess.TutorID, petChecker)
		if !ok {
			return
		}

		rem, err := svc.Update(r.Context(), sess.TutorID, chi.URLParam(r, "reminderID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toReminderResponse(rem))
	}
}

// doneReminderHandler godoc
// @Summary Marcar lembrete como concluído
// @Tags reminders
// @Produce json
// @Param reminderID path string true "ID del lembrete"
// @Success 200 {object} reminderResponse
// @Failure 404 {string} string "reminder not found"
// @Router /reminders/{reminderID}/done [post]
func doneReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		rem, err := svc.MarkDone(r.Context(), sess.TutorID, chi.URLParam(r, "reminderID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toReminderResponse(rem))
	}
}

func deleteReminderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), sess.TutorID, chi.URLParam(r, "reminderID")); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "reminder not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toReminderResponses(items []Reminder) []reminderResponse {
	out := make([]reminderResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toReminderResponse(r))
	}
	return out
}

func toReminderResponse(r Reminder) reminderResponse {
	return reminderResponse{
		ID:             r.ID,
		TutorID:        r.TutorID,
		PetID:          r.PetID,
		Title:          r.Title,
		Description:    r.Description,
		DueAt:          r.DueAt,
		Kind:           r.Kind,
		Status:         r.Status,
		Recurrence:     r.Recurrence,
		AdvanceEnabled: r.AdvanceEnabled,
		AdvanceMinutes: r.AdvanceMinutes,
		Source:         r.Source,
		SourceID:       r.SourceID,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
