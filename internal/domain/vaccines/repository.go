package vaccines

import "context"

type Repository interface {
	Create(ctx context.Context, v Vaccine) error
	Update(ctx context.Context, v Vaccine) error
	GetByID(ctx context.Context, tutorID, id string) (Vaccine, error)
	// List ordena por applied_on descendente. petID vacío = todas.
	List(ctx context.Context, tutorID, petID string) ([]Vaccine, error)
	Delete(ctx context.Context, tutorID, id string) error
}
