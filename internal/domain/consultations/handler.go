package consultations

import (
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

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/consultations", func(cr chi.Router) {
		cr.Post("/", createConsultationHandler(svc, petsSvc))
		cr.Get("/", listConsultationsHandler(svc))
		cr.Get("/{consultationID}", getConsultationHandler(svc))
		cr.Put("/{consultationID}", updateConsultationHandler(svc))
		cr.Delete("/{consultationID}", deleteConsultationHandler(svc))
	})
}

type consultationRequest struct {
	PetID        string   `json:"pet_id"`
	Kind         string   `json:"tipo_consulta"`
	Veterinarian string   `json:"veterinario"`
	Clinic       string   `json:"clinica"`
	ScheduledAt  string   `json:"data_consulta"`
	Diagnosis    string   `json:"diagnostico"`
	Treatment    string   `json:"tratamento"`
	Notes        string   `json:"observacoes"`
	Price        *float64 `json:"valor"`
	Status       string   `json:"status"`
}

type consultationResponse struct {
	ID           string    `json:"id"`
	TutorID      string    `json:"tutor_id"`
	PetID        string    `json:"pet_id"`
	Kind         Kind      `json:"tipo_consulta"`
	Veterinarian string    `json:"veterinario"`
	Clinic       string    `json:"clinica"`
	ScheduledAt  time.Time `json:"data_consulta"`
	Diagnosis    string    `json:"diagnostico"`
	Treatment    string    `json:"tratamento"`
	Notes        string    `json:"observacoes"`
	Price        *float64  `json:"valor"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (req consultationRequest) input() (Input, error) {
	in := Input{
		Kind:         req.Kind,
		Veterinarian: req.Veterinarian,
		Clinic:       req.Clinic,
		Diagnosis:    req.Diagnosis,
		Treatment:    req.Treatment,
		Notes:        req.Notes,
		Price:        req.Price,
		Status:       req.Status,
	}
	if strings.TrimSpace(req.ScheduledAt) != "" {
		t, err := dates.ParseDateTime(req.ScheduledAt, time.UTC)
		if err != nil {
			return Input{}, err
		}
		in.ScheduledAt = t
	}
	return in, nil
}

// createConsultationHandler godoc
// @Summary Registrar consulta
// @Tags consultations
// @Accept json
// @Produce json
// @Param payload body consultationRequest true "Consulta; data_consulta en RFC3339 o YYYY-MM-DDTHH:MM"
// @Success 201 {object} consultationResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /consultations [post]
func createConsultationHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req consultationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.PetID) == "" {
			http.Error(w, "pet_id is required", http.StatusBadRequest)
			return
		}
		in, err := req.input()
		if err != nil {
			http.Error(w, "data_consulta must be RFC3339 or YYYY-MM-DDTHH:MM", http.StatusBadRequest)
			return
		}

		p, err := petsSvc.EnsureOwned(r.Context(), sess.TutorID, req.PetID)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		c, err := svc.Create(r.Context(), sess.TutorID, p.ID, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toConsultationResponse(c))
	}
}

// listConsultationsHandler godoc
// @Summary Listar consultas
// @Tags consultations
// @Produce json
// @Param pet_id query string false "Filtra por pet"
// @Param status query string false "agendada|realizada|cancelada"
// @Param upcoming query bool false "Sólo agendadas desde ahora"
// @Success 200 {array} consultationResponse
// @Router /consultations [get]
func listConsultationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		var (
			items []Consultation
			err   error
		)
		if q.Get("upcoming") == "true" {
			items, err = svc.Upcoming(r.Context(), sess.TutorID, 0)
		} else {
			f := ListFilter{PetID: strings.TrimSpace(q.Get("pet_id"))}
			if st := Status(q.Get("status")); st != "" {
				if !st.Valid() {
					http.Error(w, "invalid status", http.StatusBadRequest)
					return
				}
				f.Status = st
			}
			items, err = svc.List(r.Context(), sess.TutorID, f)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]consultationResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toConsultationResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getConsultationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		c, err := svc.GetByID(r.Context(), sess.TutorID, chi.URLParam(r, "consultationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toConsultationResponse(c))
	}
}

// updateConsultationHandler: reemplaza el formulario; el pet no se cambia.
func updateConsultationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req consultationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, err := req.input()
		if err != nil {
			http.Error(w, "data_consulta must be RFC3339 or YYYY-MM-DDTHH:MM", http.StatusBadRequest)
			return
		}

		c, err := svc.Update(r.Context(), sess.TutorID, chi.URLParam(r, "consultationID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toConsultationResponse(c))
	}
}

func deleteConsultationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), sess.TutorID, chi.URLParam(r, "consultationID")); err != nil {
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
		http.Error(w, "consultation not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toConsultationResponse(c Consultation) consultationResponse {
	return consultationResponse{
		ID:           c.ID,
		TutorID:      c.TutorID,
		PetID:        c.PetID,
		Kind:         c.Kind,
		Veterinarian: c.Veterinarian,
		Clinic:       c.Clinic,
		ScheduledAt:  c.ScheduledAt,
		Diagnosis:    c.Diagnosis,
		Treatment:    c.Treatment,
		Notes:        c.Notes,
		Price:        c.Price,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
