package medications

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
	r.Route("/medications", func(mr chi.Router) {
		mr.Post("/", createMedicationHandler(svc, petsSvc))
		mr.Get("/", listMedicationsHandler(svc))
		mr.Get("/{medicationID}", getMedicationHandler(svc))
		mr.Put("/{medicationID}", updateMedicationHandler(svc))
		mr.Patch("/{medicationID}/active", setActiveHandler(svc))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc))
	})
}

type medicationRequest struct {
	PetID     string `json:"pet_id"`
	Name      string `json:"nome_medicamento"`
	Dosage    string `json:"dosagem"`
	Frequency string `json:"frequencia"`
	StartsAt  string `json:"data_inicio"`  // YYYY-MM-DD o con hora
	EndsOn    string `json:"data_termino"` // YYYY-MM-DD opcional
	Notes     string `json:"observacoes"`
	Active    *bool  `json:"medicamento_ativo"`
}

type setActiveRequest struct {
	Active *bool `json:"medicamento_ativo"`
}

type medicationResponse struct {
	ID        string    `json:"id"`
	TutorID   string    `json:"tutor_id"`
	PetID     string    `json:"pet_id"`
	Name      string    `json:"nome_medicamento"`
	Dosage    string    `json:"dosagem"`
	Frequency string    `json:"frequencia"`
	StartsAt  time.Time `json:"data_inicio"`
	EndsOn    *string   `json:"data_termino"`
	Notes     string    `json:"observacoes"`
	Active    bool      `json:"medicamento_ativo"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (req medicationRequest) input() (Input, string) {
	in := Input{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Notes:     req.Notes,
		Active:    req.Active,
	}
	if strings.TrimSpace(req.StartsAt) != "" {
		t, err := dates.ParseDateTime(req.StartsAt, time.UTC)
		if err != nil {
			return Input{}, "data_inicio must be YYYY-MM-DD"
		}
		in.StartsAt = t
	}
	end, err := dates.ParseOptionalDate(req.EndsOn)
	if err != nil {
		return Input{}, "data_termino must be YYYY-MM-DD"
	}
	in.EndsOn = end
	return in, ""
}

// createMedicationHandler godoc
// @Summary Registrar medicamento
// @Description Si está activo y empieza en el futuro se agenda un lembrete (30 min de antecedencia, recurrencia según frequencia).
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body medicationRequest true "Medicamento"
// @Success 201 {object} medicationResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /medications [post]
func createMedicationHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.PetID) == "" {
			http.Error(w, "pet_id is required", http.StatusBadRequest)
			return
		}
		in, msg := req.input()
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
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

		m, err := svc.Create(r.Context(), sess.TutorID, p, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toMedicationResponse(m, svc.Now()))
	}
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Tags medications
// @Produce json
// @Param pet_id query string false "Filtra por pet"
// @Param status query string false "active|finished|paused"
// @Success 200 {array} medicationResponse
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context(), sess.TutorID, strings.TrimSpace(r.URL.Query().Get("pet_id")))
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := svc.Now()
		want := Status(r.URL.Query().Get("status"))
		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			if want != "" && m.StatusAt(now) != want {
				continue
			}
			out = append(out, toMedicationResponse(m, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.GetByID(r.Context(), sess.TutorID, chi.URLParam(r, "medicationID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(m, svc.Now()))
	}
}

func updateMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req medicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, msg := req.input()
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		m, err := svc.Update(r.Context(), sess.TutorID, chi.URLParam(r, "medicationID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(m, svc.Now()))
	}
}

// setActiveHandler godoc
// @Summary Pausar o reactivar medicamento
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body setActiveRequest true "medicamento_ativo"
// @Success 200 {object} medicationResponse
// @Router /medications/{medicationID}/active [patch]
func setActiveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req setActiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Active == nil {
			http.Error(w, "medicamento_ativo is required", http.StatusBadRequest)
			return
		}

		m, err := svc.SetActive(r.Context(), sess.TutorID, chi.URLParam(r, "medicationID"), *req.Active)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(m, svc.Now()))
	}
}

func deleteMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), sess.TutorID, chi.URLParam(r, "medicationID")); err != nil {
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
		http.Error(w, "medication not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toMedicationResponse(m Medication, now time.Time) medicationResponse {
	return medicationResponse{
		ID:        m.ID,
		TutorID:   m.TutorID,
		PetID:     m.PetID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		StartsAt:  m.StartsAt,
		EndsOn:    dates.FormatDate(m.EndsOn),
		Notes:     m.Notes,
		Active:    m.Active,
		Status:    m.StatusAt(now),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
