package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"petcheck/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Name      string   `json:"nome"`
	Species   string   `json:"especie"`
	Breed     string   `json:"raca"`
	Sex       string   `json:"sexo"`
	Color     string   `json:"cor"`
	BirthDate string   `json:"data_nascimento"` // YYYY-MM-DD opcional
	WeightKg  *float64 `json:"peso"`
	Neutered  bool     `json:"castrado"`
	PhotoURL  string   `json:"foto_url"`
	Notes     string   `json:"observacoes"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name     *string `json:"nome"`
	Species  *string `json:"especie"`
	Breed    *string `json:"raca"`
	Sex      *string `json:"sexo"`
	Color    *string `json:"cor"`
	Neutered *bool   `json:"castrado"`
	PhotoURL *string `json:"foto_url"`
	Notes    *string `json:"observacoes"`
}

type petResponse struct {
	ID        string    `json:"id"`
	TutorID   string    `json:"tutor_id"`
	Name      string    `json:"nome"`
	Species   Species   `json:"especie"`
	Breed     string    `json:"raca"`
	Sex       Sex       `json:"sexo"`
	Color     string    `json:"cor"`
	BirthDate *string   `json:"data_nascimento"`
	WeightKg  *float64  `json:"peso"`
	Neutered  bool      `json:"castrado"`
	PhotoURL  string    `json:"foto_url"`
	Notes     string    `json:"observacoes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type deleteResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// createPetHandler godoc
// @Summary Cadastrar pet
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Dados do pet; data_nascimento em YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse(dateLayout, req.BirthDate)
			if err != nil {
				http.Error(w, "data_nascimento must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), sess.TutorID, CreateInput{
			Name:      req.Name,
			Species:   req.Species,
			Breed:     req.Breed,
			Sex:       req.Sex,
			Color:     req.Color,
			BirthDate: bd,
			WeightKg:  req.WeightKg,
			Neutered:  req.Neutered,
			PhotoURL:  req.PhotoURL,
			Notes:     req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByTutor(r.Context(), sess.TutorID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), sess.TutorID, chi.URLParam(r, "petID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler: PATCH con presencia de campos.
// data_nascimento y peso aceptan null para limpiar.
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Decodificar a map primero para ver qué campos vinieron.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updatePetRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateProfileInput{
			Name:     req.Name,
			Species:  req.Species,
			Breed:    req.Breed,
			Sex:      req.Sex,
			Color:    req.Color,
			Neutered: req.Neutered,
			PhotoURL: req.PhotoURL,
			Notes:    req.Notes,
		}

		if v, exists := raw["data_nascimento"]; exists {
			in.BirthDate.Set = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "data_nascimento must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse(dateLayout, s)
				if err != nil {
					http.Error(w, "data_nascimento must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				in.BirthDate.Value = &t
			}
		}
		if v, exists := raw["peso"]; exists {
			in.WeightKg.Set = true
			if string(v) != "null" {
				var f float64
				if err := json.Unmarshal(v, &f); err != nil {
					http.Error(w, "peso must be a number or null", http.StatusBadRequest)
					return
				}
				in.WeightKg.Value = &f
			}
		}

		updated, err := svc.UpdateProfile(r.Context(), sess.TutorID, chi.URLParam(r, "petID"), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(updated))
	}
}

// deletePetHandler godoc
// @Summary Excluir pet
// @Description Borra el pet del tutor. Los registros dependientes caen por cascade en la base.
// @Tags pets
// @Produce json
// @Param petID path string true "ID del pet"
// @Success 200 {object} deleteResponse
// @Failure 401 {object} deleteResponse
// @Failure 404 {object} deleteResponse "no existe para este tutor"
// @Failure 500 {object} deleteResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, deleteResponse{Error: "unauthenticated"})
			return
		}

		err := svc.Delete(r.Context(), sess.TutorID, chi.URLParam(r, "petID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeJSON(w, http.StatusNotFound, deleteResponse{Error: "pet not found for this tutor"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, deleteResponse{Error: "failed to delete pet: " + err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, deleteResponse{Success: true})
	}
}

func toPetResponse(p Pet) petResponse {
	var bd *string
	if p.BirthDate != nil {
		s := p.BirthDate.Format(dateLayout)
		bd = &s
	}
	return petResponse{
		ID:        p.ID,
		TutorID:   p.TutorID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Sex:       p.Sex,
		Color:     p.Color,
		BirthDate: bd,
		WeightKg:  p.WeightKg,
		Neutered:  p.Neutered,
		PhotoURL:  p.PhotoURL,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en cada módulo de dominio;
// si se sigue repitiendo conviene extraerlo a un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
