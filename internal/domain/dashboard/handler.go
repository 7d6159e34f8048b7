package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"petcheck/internal/domain/vaccines"
	"petcheck/internal/middleware"
	"petcheck/internal/platform/dates"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", dashboardHandler(svc))
}

type petItem struct {
	ID      string `json:"id"`
	Name    string `json:"nome"`
	Species string `json:"especie"`
}

type consultationItem struct {
	ID           string    `json:"id"`
	PetID        string    `json:"pet_id"`
	Kind         string    `json:"tipo_consulta"`
	Clinic       string    `json:"clinica"`
	Veterinarian string    `json:"veterinario"`
	ScheduledAt  time.Time `json:"data_consulta"`
}

type reminderItem struct {
	ID     string    `json:"id"`
	PetID  *string   `json:"pet_id"`
	Title  string    `json:"titulo"`
	DueAt  time.Time `json:"data_lembrete"`
	Kind   string    `json:"tipo"`
	Source string    `json:"origem"`
}

type vaccineItem struct {
	ID         string          `json:"id"`
	PetID      string          `json:"pet_id"`
	Name       string          `json:"nome_vacina"`
	NextDoseOn *string         `json:"data_proxima_dose"`
	Status     vaccines.Status `json:"status"`
}

type medicationItem struct {
	ID        string  `json:"id"`
	PetID     string  `json:"pet_id"`
	Name      string  `json:"nome_medicamento"`
	Dosage    string  `json:"dosagem"`
	Frequency string  `json:"frequencia"`
	EndsOn    *string `json:"data_termino"`
}

type dashboardResponse struct {
	Pets                  []petItem          `json:"pets"`
	UpcomingConsultations []consultationItem `json:"proximas_consultas"`
	UrgentReminders       []reminderItem     `json:"lembretes_urgentes"`
	VaccineAlerts         []vaccineItem      `json:"alertas_vacinas"`
	ActiveMedications     []medicationItem   `json:"medicamentos_ativos"`
	GeneratedAt           time.Time          `json:"generated_at"`
}

// dashboardHandler godoc
// @Summary Resumen del tutor
// @Description Pets, próximas consultas, lembretes urgentes (vencidos/hoy/mañana), alertas de vacinas y medicamentos activos.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dashboardResponse
// @Failure 401 {string} string "unauthorized"
// @Router /dashboard [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sum, err := svc.Summary(r.Context(), sess.TutorID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toResponse(sum))
	}
}

func toResponse(s Summary) dashboardResponse {
	resp := dashboardResponse{
		Pets:                  make([]petItem, 0, len(s.Pets)),
		UpcomingConsultations: make([]consultationItem, 0, len(s.UpcomingConsultations)),
		UrgentReminders:       make([]reminderItem, 0, len(s.UrgentReminders)),
		VaccineAlerts:         make([]vaccineItem, 0, len(s.VaccineAlerts)),
		ActiveMedications:     make([]medicationItem, 0, len(s.ActiveMedications)),
		GeneratedAt:           s.GeneratedAt,
	}
	for _, p := range s.Pets {
		resp.Pets = append(resp.Pets, petItem{ID: p.ID, Name: p.Name, Species: string(p.Species)})
	}
	for _, c := range s.UpcomingConsultations {
		resp.UpcomingConsultations = append(resp.UpcomingConsultations, consultationItem{
			ID: c.ID, PetID: c.PetID, Kind: string(c.Kind), Clinic: c.Clinic, Veterinarian: c.Veterinarian, ScheduledAt: c.ScheduledAt,
		})
	}
	for _, r := range s.UrgentReminders {
		resp.UrgentReminders = append(resp.UrgentReminders, reminderItem{
			ID: r.ID, PetID: r.PetID, Title: r.Title, DueAt: r.DueAt, Kind: string(r.Kind), Source: string(r.Source),
		})
	}
	for _, v := range s.VaccineAlerts {
		resp.VaccineAlerts = append(resp.VaccineAlerts, vaccineItem{
			ID: v.ID, PetID: v.PetID, Name: v.Name, NextDoseOn: dates.FormatDate(v.NextDoseOn), Status: v.StatusAt(s.GeneratedAt),
		})
	}
	for _, m := range s.ActiveMedications {
		resp.ActiveMedications = append(resp.ActiveMedications, medicationItem{
			ID: m.ID, PetID: m.PetID, Name: m.Name, Dosage: m.Dosage, Frequency: m.Frequency, EndsOn: dates.FormatDate(m.EndsOn),
		})
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
