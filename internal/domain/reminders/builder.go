package reminders

import (
	"fmt"
	"strings"
	"time"

	"petcheck/internal/domain/preferences"
	"petcheck/internal/ports/notify"
)

const (
	MedicationAdvanceMinutes = 30
	VaccineAdvanceMinutes    = 60

	// Si el formulario pide aviso pero no manda minutos.
	DefaultAdvanceMinutes = 60
)

// Draft es un lembrete listo para persistir junto con el pedido de
// notificación que le corresponde. ID y timestamps los pone el Service.
type Draft struct {
	Reminder Reminder
	Request  notify.ReminderRequest
}

func newDraft(r Reminder) Draft {
	return Draft{
		Reminder: r,
		Request: notify.ReminderRequest{
			TutorID:        r.TutorID,
			Title:          r.Title,
			DueAt:          r.DueAt,
			AdvanceEnabled: r.AdvanceEnabled,
			AdvanceMinutes: r.AdvanceMinutes,
		},
	}
}

// MedicationCreated es lo que el módulo de medicamentos informa al crear uno.
type MedicationCreated struct {
	TutorID      string
	PetID        string
	PetName      string
	MedicationID string
	Name         string
	Dosage       string
	Frequency    string
	StartsAt     time.Time
	Active       bool
}

// FromMedication arma el lembrete de administración. ok=false cuando el
// medicamento está inactivo o ya empezó.
func FromMedication(ev MedicationCreated, now time.Time) (Draft, bool) {
	if !ev.Active || !ev.StartsAt.After(now) {
		return Draft{}, false
	}

	petID := ev.PetID
	minutes := MedicationAdvanceMinutes
	return newDraft(Reminder{
		TutorID:        ev.TutorID,
		PetID:          &petID,
		Title:          fmt.Sprintf("Administer %s – %s", ev.Name, ev.Dosage),
		Description:    fmt.Sprintf("Pet: %s. Frequency: %s", ev.PetName, ev.Frequency),
		DueAt:          ev.StartsAt,
		Kind:           KindMedication,
		Status:         StatusActive,
		Recurrence:     RecurrenceForFrequency(ev.Frequency),
		AdvanceEnabled: true,
		AdvanceMinutes: &minutes,
		Source:         SourceMedication,
		SourceID:       ev.MedicationID,
	}), true
}

// RecurrenceForFrequency mapea la frecuencia libre del medicamento.
func RecurrenceForFrequency(freq string) Recurrence {
	f := strings.ToLower(strings.TrimSpace(freq))
	switch {
	case strings.Contains(f, "diária"), strings.Contains(f, "diaria"),
		f == "1x ao dia", f == "2x ao dia", f == "3x ao dia":
		return RecurrenceDaily
	case strings.Contains(f, "semanal"):
		return RecurrenceWeekly
	case strings.Contains(f, "mensal"):
		return RecurrenceMonthly
	default:
		return RecurrenceNone
	}
}

type VaccineNextDose struct {
	TutorID     string
	PetID       string
	PetName     string
	VaccineID   string
	VaccineName string
	NextDoseAt  *time.Time
}

// FromVaccineNextDose: sin próxima dosis o con fecha pasada no hay lembrete.
func FromVaccineNextDose(ev VaccineNextDose, now time.Time) (Draft, bool) {
	if ev.NextDoseAt == nil || !ev.NextDoseAt.After(now) {
		return Draft{}, false
	}

	petID := ev.PetID
	minutes := VaccineAdvanceMinutes
	return newDraft(Reminder{
		TutorID:        ev.TutorID,
		PetID:          &petID,
		Title:          fmt.Sprintf("Next dose of vaccine %s – %s", ev.VaccineName, ev.PetName),
		Description:    fmt.Sprintf("Pet: %s", ev.PetName),
		DueAt:          *ev.NextDoseAt,
		Kind:           KindVaccine,
		Status:         StatusActive,
		Recurrence:     RecurrenceNone,
		AdvanceEnabled: true,
		AdvanceMinutes: &minutes,
		Source:         SourceVaccine,
		SourceID:       ev.VaccineID,
	}), true
}

// FormInput son los campos del formulario de lembrete, sin interpretar.
type FormInput struct {
	PetID          *string
	Title          string
	Description    string
	DueAt          time.Time
	Kind           string
	Recurrence     string
	AdvanceEnabled bool
	AdvanceMinutes *float64
}

// FromForm valida el formulario y arma el lembrete manual.
func FromForm(tutorID string, in FormInput) (Draft, error) {
	r, err := applyForm(Reminder{TutorID: tutorID, Status: StatusActive, Source: SourceManual}, in)
	if err != nil {
		return Draft{}, err
	}
	return newDraft(r), nil
}

// applyForm copia el formulario sobre r; lo comparten alta y edición.
func applyForm(r Reminder, in FormInput) (Reminder, error) {
	if strings.TrimSpace(r.TutorID) == "" {
		return Reminder{}, ErrInvalidInput
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Reminder{}, fmt.Errorf("%w: titulo is required", ErrInvalidInput)
	}
	if in.DueAt.IsZero() {
		return Reminder{}, fmt.Errorf("%w: data_lembrete is required", ErrInvalidInput)
	}
	rec, ok := ParseRecurrence(in.Recurrence)
	if !ok {
		return Reminder{}, fmt.Errorf("%w: recorrencia %q not supported", ErrInvalidInput, in.Recurrence)
	}

	var petID *string
	if in.PetID != nil && strings.TrimSpace(*in.PetID) != "" {
		id := strings.TrimSpace(*in.PetID)
		petID = &id
	}

	var minutes *int
	if in.AdvanceEnabled {
		if !preferences.IsValidAdvanceMinutes(in.AdvanceMinutes) {
			return Reminder{}, fmt.Errorf("%w: %w", ErrInvalidInput, preferences.ErrInvalidAdvanceMinutes)
		}
		m := DefaultAdvanceMinutes
		if in.AdvanceMinutes != nil {
			m = int(*in.AdvanceMinutes)
		}
		minutes = &m
	}

	r.PetID = petID
	r.Title = title
	r.Description = strings.TrimSpace(in.Description)
	r.DueAt = in.DueAt
	r.Kind = ParseKind(in.Kind)
	r.Recurrence = rec
	r.AdvanceEnabled = in.AdvanceEnabled
	r.AdvanceMinutes = minutes
	return r, nil
}
