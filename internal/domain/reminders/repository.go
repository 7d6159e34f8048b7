package reminders

import (
	"context"
	"time"
)

// ListFilter: campos vacíos no filtran. El resultado va ordenado por due_at.
type ListFilter struct {
	Status Status
	PetID  string
	From   *time.Time
	To     *time.Time
}

type Repository interface {
	Create(ctx context.Context, r Reminder) error
	Update(ctx context.Context, r Reminder) error
	GetByID(ctx context.Context, tutorID, id string) (Reminder, error)
	List(ctx context.Context, tutorID string, f ListFilter) ([]Reminder, error)
	Delete(ctx context.Context, tutorID, id string) error

	// CloseBySource marca como concluídos los lembretes activos generados por
	// un registro (vacina, medicamento). Devuelve cuántos cambiaron.
	CloseBySource(ctx context.Context, tutorID string, source Source, sourceID string, at time.Time) (int, error)
}

// Matches lo usan los repos en memoria para aplicar el mismo filtro que SQL.
func (f ListFilter) Matches(r Reminder) bool {
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if f.PetID != "" && (r.PetID == nil || *r.PetID != f.PetID) {
		return false
	}
	if f.From != nil && r.DueAt.Before(*f.From) {
		return false
	}
	if f.To != nil && r.DueAt.After(*f.To) {
		return false
	}
	return true
}
