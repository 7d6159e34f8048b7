package pets

import "context"

// Repository filtra siempre por tutor: un pet de otro tutor es ErrNotFound.
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, tutorID, id string) (Pet, error)
	ListByTutor(ctx context.Context, tutorID string) ([]Pet, error)
	Delete(ctx context.Context, tutorID, id string) error
}
