package vaccines

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
	r.Route("/vaccines", func(vr chi.Router) {
		vr.Post("/", createVaccineHandler(svc, petsSvc))
		vr.Get("/", listVaccinesHandler(svc))
		vr.Get("/{vaccineID}", getVaccineHandler(svc))
		vr.Put("/{vaccineID}", updateVaccineHandler(svc, petsSvc))
		vr.Delete("/{vaccineID}", deleteVaccineHandler(svc))
	})
}

type vaccineRequest struct {
	PetID        string `json:"pet_id"`
	Name         string `json:"nome_vacina"`
	AppliedOn    string `json:"data_aplicacao"`    // YYYY-MM-DD
	NextDoseOn   string `json:"data_proxima_dose"` // YYYY-MM-DD opcional
	Veterinarian string `json:"veterinario"`
	Clinic       string `json:"clinica"`
	Batch        string `json:"lote"`
	Notes        string `json:"observacoes"`
}

type vaccineResponse struct {
	ID           string    `json:"id"`
	TutorID      string    `json:"tutor_id"`
	PetID        string    `json:"pet_id"`
	Name         string    `json:"nome_vacina"`
	AppliedOn    string    `json:"data_aplicacao"`
	NextDoseOn   *string   `json:"data_proxima_dose"`
	Veterinarian string    `json:"veterinario"`
	Clinic       string    `json:"clinica"`
	Batch        string    `json:"lote"`
	Notes        string    `json:"observacoes"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (req vaccineRequest) input() (Input, string) {
	in := Input{
		Name:         req.Name,
		Veterinarian: req.Veterinarian,
		Clinic:       req.Clinic,
		Batch:        req.Batch,
		Notes:        req.Notes,
	}
	if strings.TrimSpace(req.AppliedOn) != "" {
		t, err := dates.ParseDate(req.AppliedOn)
		if err != nil {
			return Input{}, "data_aplicacao must be YYYY-MM-DD"
		}
		in.AppliedOn = t
	}
	next, err := dates.ParseOptionalDate(req.NextDoseOn)
	if err != nil {
		return Input{}, "data_proxima_dose must be YYYY-MM-DD"
	}
	in.NextDoseOn = next
	return in, ""
}

// createVaccineHandler godoc
// @Summary Registrar vacina
// @Description Si hay data_proxima_dose futura se agenda un lembrete (60 min de antecedencia).
// @Tags vaccines
// @Accept json
// @Produce json
// @Param payload body vaccineRequest true "Vacina"
// @Success 201 {object} vaccineResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /vaccines [post]
func createVaccineHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req vaccineRequest
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
			writePetError(w, err)
			return
		}

		v, err := svc.Create(r.Context(), sess.TutorID, p, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toVaccineResponse(v, svc.Now()))
	}
}

// listVaccinesHandler godoc
// @Summary Listar vacinas
// @Tags vaccines
// @Produce json
// @Param pet_id query string false "Filtra por pet"
// @Param status query string false "overdue|upcoming|up_to_date"
// @Success 200 {array} vaccineResponse
// @Router /vaccines [get]
func listVaccinesHandler(svc *Service) http.HandlerFunc {
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
		out := make([]vaccineResponse, 0, len(items))
		for _, v := range items {
			if want != "" && v.StatusAt(now) != want {
				continue
			}
			out = append(out, toVaccineResponse(v, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		v, err := svc.GetByID(r.Context(), sess.TutorID, chi.URLParam(r, "vaccineID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toVaccineResponse(v, svc.Now()))
	}
}

func updateVaccineHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req vaccineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		in, msg := req.input()
		if msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		id := chi.URLParam(r, "vaccineID")
		current, err := svc.GetByID(r.Context(), sess.TutorID, id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		p, err := petsSvc.EnsureOwned(r.Context(), sess.TutorID, current.PetID)
		if err != nil {
			writePetError(w, err)
			return
		}

		v, err := svc.Update(r.Context(), sess.TutorID, id, p, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toVaccineResponse(v, svc.Now()))
	}
}

func deleteVaccineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), sess.TutorID, chi.URLParam(r, "vaccineID")); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writePetError(w http.ResponseWriter, err error) {
	if errors.Is(err, pets.ErrNotFound) {
		http.Error(w, "pet not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "vaccine not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toVaccineResponse(v Vaccine, now time.Time) vaccineResponse {
	return vaccineResponse{
		ID:           v.ID,
		TutorID:      v.TutorID,
		PetID:        v.PetID,
		Name:         v.Name,
		AppliedOn:    v.AppliedOn.Format(dates.DateLayout),
		NextDoseOn:   dates.FormatDate(v.NextDoseOn),
		Veterinarian: v.Veterinarian,
		Clinic:       v.Clinic,
		Batch:        v.Batch,
		Notes:        v.Notes,
		Status:       v.StatusAt(now),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
