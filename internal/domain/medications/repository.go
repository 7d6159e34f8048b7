package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	Update(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, tutorID, id string) (Medication, error)
	// List ordena por starts_at descendente. petID vacío = todos.
	List(ctx context.Context, tutorID, petID string) ([]Medication, error)
	Delete(ctx context.Context, tutorID, id string) error
}
