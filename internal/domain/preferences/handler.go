package preferences

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"petcheck/internal/middleware"

	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 64 << 10

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/profile/notify-time", func(pr chi.Router) {
		pr.Get("/", getPreferenceHandler(svc))
		pr.Post("/", updatePreferenceHandler(svc))
	})
}

// preferenceResponse es la preferencia resuelta tal como la consume el front.
type preferenceResponse struct {
	NotifyMinutes          *int    `json:"notify_minutes"`
	NotifyLabel            *string `json:"notify_label"`
	ConsultAdvanceEnabled  bool    `json:"consulta_adv_enabled"`
	ConsultAdvanceMinutes  *int    `json:"consulta_adv_minutes"`
	ReminderAdvanceEnabled bool    `json:"lembrete_adv_enabled"`
	ReminderAdvanceMinutes *int    `json:"lembrete_adv_minutes"`
}

type updatePreferenceResponse struct {
	OK   bool               `json:"ok"`
	Data preferenceResponse `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// getPreferenceHandler godoc
// @Summary Obtener preferencias de notificación
// @Description Devuelve la preferencia resuelta del tutor. Si todavía no existe, todo viene en null/false.
// @Tags preferences
// @Produce json
// @Success 200 {object} preferenceResponse
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /profile/notify-time [get]
func getPreferenceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
			return
		}

		p, err := svc.Get(r.Context(), sess.TutorID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, toPreferenceResponse(p))
	}
}

// updatePreferenceHandler godoc
// @Summary Actualizar preferencias de notificación
// @Description Update parcial. Acepta el shape plano (consulta_adv_enabled, consulta_adv_minutes, ...) o el anidado (consulta: {enabled, minutes}). Los minutos solo se guardan si el aviso queda habilitado.
// @Tags preferences
// @Accept json
// @Produce json
// @Success 200 {object} updatePreferenceResponse
// @Failure 400 {object} errorResponse "horario o minutos inválidos"
// @Failure 401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /profile/notify-time [post]
func updatePreferenceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated"})
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
			return
		}

		up, err := DecodeUpdate(body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		p, err := svc.Apply(r.Context(), sess.TutorID, up)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidTimeLabel),
				errors.Is(err, ErrInvalidAdvanceMinutes),
				errors.Is(err, ErrInvalidPayload):
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			default:
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			}
			return
		}

		writeJSON(w, http.StatusOK, updatePreferenceResponse{OK: true, Data: toPreferenceResponse(p)})
	}
}

func toPreferenceResponse(p Preference) preferenceResponse {
	return preferenceResponse{
		NotifyMinutes:          p.NotifyMinutes,
		NotifyLabel:            MinutesToLabel(p.NotifyMinutes),
		ConsultAdvanceEnabled:  p.ConsultAdvanceEnabled,
		ConsultAdvanceMinutes:  p.ConsultAdvanceMinutes,
		ReminderAdvanceEnabled: p.ReminderAdvanceEnabled,
		ReminderAdvanceMinutes: p.ReminderAdvanceMinutes,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
