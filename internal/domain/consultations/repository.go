package consultations

import (
	"context"
	"time"
)

// ListFilter: vacío no filtra. From incluye el instante.
type ListFilter struct {
	PetID  string
	Status Status
	From   *time.Time
	Limit  int
}

func (f ListFilter) Matches(c Consultation) bool {
	if f.PetID != "" && c.PetID != f.PetID {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.From != nil && c.ScheduledAt.Before(*f.From) {
		return false
	}
	return true
}

type Repository interface {
	Create(ctx context.Context, c Consultation) error
	Update(ctx context.Context, c Consultation) error
	GetByID(ctx context.Context, tutorID, id string) (Consultation, error)
	// List ordena por scheduled_at; descendente salvo que haya From (próximas).
	List(ctx context.Context, tutorID string, f ListFilter) ([]Consultation, error)
	Delete(ctx context.Context, tutorID, id string) error
}
