package pets

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
	ErrNotFound     = errors.New("pet not found")
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

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Sex       string
	Color     string
	BirthDate *time.Time
	WeightKg  *float64
	Neutered  bool
	PhotoURL  string
	Notes     string
}

func (s *Service) Create(ctx context.Context, tutorID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(tutorID) == "" {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:        uuid.NewString(),
		TutorID:   tutorID,
		Name:      strings.TrimSpace(in.Name),
		Species:   Species(strings.TrimSpace(in.Species)),
		Breed:     strings.TrimSpace(in.Breed),
		Sex:       Sex(strings.TrimSpace(in.Sex)),
		Color:     strings.TrimSpace(in.Color),
		BirthDate: in.BirthDate,
		WeightKg:  in.WeightKg,
		Neutered:  in.Neutered,
		PhotoURL:  strings.TrimSpace(in.PhotoURL),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.Species == "" {
		p.Species = SpeciesDog
	}

	if err := s.validate(p); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Present distingue "no enviado" de "enviado en null" en un PATCH.
type Present[T any] struct {
	Set   bool
	Value *T
}

type UpdateProfileInput struct {
	// Punteros: nil = no tocar.
	Name     *string
	Species  *string
	Breed    *string
	Sex      *string
	Color    *string
	Neutered *bool
	PhotoURL *string
	Notes    *string

	// Estos dos se pueden limpiar con null.
	BirthDate Present[time.Time]
	WeightKg  Present[float64]
}

func (s *Service) UpdateProfile(ctx context.Context, tutorID, id string, in UpdateProfileInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, tutorID, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		p.Species = Species(strings.TrimSpace(*in.Species))
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		p.Sex = Sex(strings.TrimSpace(*in.Sex))
	}
	if in.Color != nil {
		p.Color = strings.TrimSpace(*in.Color)
	}
	if in.Neutered != nil {
		p.Neutered = *in.Neutered
	}
	if in.PhotoURL != nil {
		p.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.BirthDate.Set {
		p.BirthDate = in.BirthDate.Value
	}
	if in.WeightKg.Set {
		p.WeightKg = in.WeightKg.Value
	}

	if err := s.validate(p); err != nil {
		return Pet{}, err
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, tutorID, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, tutorID, id)
}

func (s *Service) ListByTutor(ctx context.Context, tutorID string) ([]Pet, error) {
	return s.repo.ListByTutor(ctx, tutorID)
}

// Delete borra el pet. Consultas, vacinas y medicamentos caen por
// ON DELETE CASCADE; los lembretes quedan con pet_id null.
func (s *Service) Delete(ctx context.Context, tutorID, id string) error {
	if _, err := s.GetByID(ctx, tutorID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tutorID, id)
}

// EnsureOwned lo usan otros módulos para validar el pet_id que reciben
// sin importar el paquete de storage.
func (s *Service) EnsureOwned(ctx context.Context, tutorID, petID string) (Pet, error) {
	return s.GetByID(ctx, tutorID, petID)
}

// Owns: nil si el pet existe y es del tutor.
func (s *Service) Owns(ctx context.Context, tutorID, petID string) error {
	_, err := s.GetByID(ctx, tutorID, petID)
	return err
}

func (s *Service) validate(p Pet) error {
	if p.Name == "" {
		return fmt.Errorf("%w: nome is required", ErrInvalidInput)
	}
	if !p.Species.Valid() {
		return fmt.Errorf("%w: especie %q not supported", ErrInvalidInput, p.Species)
	}
	if !p.Sex.Valid() {
		return fmt.Errorf("%w: sexo must be macho or fêmea", ErrInvalidInput)
	}
	if p.BirthDate != nil {
		now := s.now()
		if p.BirthDate.After(now) {
			return fmt.Errorf("%w: data_nascimento cannot be in the future", ErrInvalidInput)
		}
		if p.BirthDate.Before(now.AddDate(-MaxAgeYears, 0, 0)) {
			return fmt.Errorf("%w: pet cannot be older than %d years", ErrInvalidInput, MaxAgeYears)
		}
	}
	if p.WeightKg != nil && (*p.WeightKg <= 0 || *p.WeightKg > MaxWeightKg) {
		return fmt.Errorf("%w: peso must be between 0 and %d kg", ErrInvalidInput, MaxWeightKg)
	}
	return nil
}
