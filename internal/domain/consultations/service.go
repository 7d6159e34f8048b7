package consultations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("consultation not found")
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

// Input es el formulario completo; se usa en alta y en edición.
type Input struct {
	Kind         string
	Veterinarian string
	Clinic       string
	ScheduledAt  time.Time
	Diagnosis    string
	Treatment    string
	Notes        string
	Price        *float64
	Status       string
}

// Create: el pet ya viene validado por el handler.
func (s *Service) Create(ctx context.Context, tutorID, petID string, in Input) (Consultation, error) {
	if strings.TrimSpace(tutorID) == "" || strings.TrimSpace(petID) == "" {
		return Consultation{}, fmt.Errorf("%w: pet_id is required", ErrInvalidInput)
	}

	now := s.now()
	c := apply(Consultation{
		ID:        uuid.NewString(),
		TutorID:   tutorID,
		PetID:     petID,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)

	if err := validate(c); err != nil {
		return Consultation{}, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Consultation{}, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, tutorID, id string, in Input) (Consultation, error) {
	c, err := s.GetByID(ctx, tutorID, id)
	if err != nil {
		return Consultation{}, err
	}

	c = apply(c, in)
	if err := validate(c); err != nil {
		return Consultation{}, err
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Consultation{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, tutorID, id string) (Consultation, error) {
	if strings.TrimSpace(id) == "" {
		return Consultation{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, tutorID, id)
}

func (s *Service) List(ctx context.Context, tutorID string, f ListFilter) ([]Consultation, error) {
	return s.repo.List(ctx, tutorID, f)
}

// Upcoming: agendadas desde ahora, las más cercanas primero.
func (s *Service) Upcoming(ctx context.Context, tutorID string, limit int) ([]Consultation, error) {
	now := s.now()
	return s.repo.List(ctx, tutorID, ListFilter{Status: StatusScheduled, From: &now, Limit: limit})
}

func (s *Service) Delete(ctx context.Context, tutorID, id string) error {
	if _, err := s.GetByID(ctx, tutorID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tutorID, id)
}

func apply(c Consultation, in Input) Consultation {
	c.Kind = Kind(strings.TrimSpace(in.Kind))
	if c.Kind == "" {
		c.Kind = KindRoutine
	}
	c.Status = Status(strings.TrimSpace(in.Status))
	if c.Status == "" {
		c.Status = StatusScheduled
	}
	c.Veterinarian = strings.TrimSpace(in.Veterinarian)
	c.Clinic = strings.TrimSpace(in.Clinic)
	c.ScheduledAt = in.ScheduledAt
	c.Diagnosis = strings.TrimSpace(in.Diagnosis)
	c.Treatment = strings.TrimSpace(in.Treatment)
	c.Notes = strings.TrimSpace(in.Notes)
	c.Price = in.Price
	return c
}

func validate(c Consultation) error {
	if c.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: data_consulta is required", ErrInvalidInput)
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("%w: tipo_consulta %q not supported", ErrInvalidInput, c.Kind)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: status %q not supported", ErrInvalidInput, c.Status)
	}
	if c.Price != nil && *c.Price < 0 {
		return fmt.Errorf("%w: valor cannot be negative", ErrInvalidInput)
	}
	return nil
}
