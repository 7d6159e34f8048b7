package preferences

import (
	"context"
	"errors"
	"strings"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Get devuelve la preferencia del tutor; sin fila => todo deshabilitado/null.
func (s *Service) Get(ctx context.Context, tutorID string) (Preference, error) {
	tutorID = strings.TrimSpace(tutorID)
	if tutorID == "" {
		return Preference{}, ErrInvalidPayload
	}

	p, err := s.repo.Get(ctx, tutorID)
	if errors.Is(err, ErrNotFound) {
		return Preference{TutorID: tutorID}, nil
	}
	if err != nil {
		return Preference{}, err
	}
	return p, nil
}

// Apply resuelve el update parcial contra la fila actual y lo persiste.
// Cualquier error de validación aborta sin escribir.
func (s *Service) Apply(ctx context.Context, tutorID string, up Update) (Preference, error) {
	tutorID = strings.TrimSpace(tutorID)
	if tutorID == "" {
		return Preference{}, ErrInvalidPayload
	}

	var prev *Preference
	current, err := s.repo.Get(ctx, tutorID)
	switch {
	case err == nil:
		prev = &current
	case errors.Is(err, ErrNotFound):
		prev = nil
	default:
		return Preference{}, err
	}

	res, err := Resolve(tutorID, prev, up)
	if err != nil {
		return Preference{}, err
	}
	res.Row.UpdatedAt = s.now()

	return s.repo.Upsert(ctx, res.Row, res.Touched)
}
