package medications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petcheck/internal/domain/pets"
	"petcheck/internal/domain/reminders"
	"petcheck/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
)

// ReminderHook: *reminders.Service.
type ReminderHook interface {
	OnMedicationCreated(ctx context.Context, ev reminders.MedicationCreated) (*reminders.Reminder, error)
	CloseBySource(ctx context.Context, tutorID string, source reminders.Source, sourceID string) error
}

type Service struct {
	repo Repository
	hook ReminderHook
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, hook ReminderHook, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		hook: hook,
		log:  log,
		now:  time.Now,
	}
}

type Input struct {
	Name      string
	Dosage    string
	Frequency string
	StartsAt  time.Time
	EndsOn    *time.Time
	Notes     string
	// nil = activo (default del formulario).
	Active *bool
}

// Create guarda el medicamento y agenda el lembrete de administración cuando
// corresponde (activo y con inicio futuro).
func (s *Service) Create(ctx context.Context, tutorID string, pet pets.Pet, in Input) (Medication, error) {
	if strings.TrimSpace(tutorID) == "" || pet.ID == "" {
		return Medication{}, fmt.Errorf("%w: pet_id is required", ErrInvalidInput)
	}

	now := s.now()
	m := apply(Medication{
		ID:        uuid.NewString(),
		TutorID:   tutorID,
		PetID:     pet.ID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)

	if err := validate(m); err != nil {
		return Medication{}, err
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}

	if s.hook != nil {
		_, err := s.hook.OnMedicationCreated(ctx, reminders.MedicationCreated{
			TutorID:      m.TutorID,
			PetID:        m.PetID,
			PetName:      pet.Name,
			MedicationID: m.ID,
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			StartsAt:     m.StartsAt,
			Active:       m.Active,
		})
		if err != nil {
			s.log.Warn("medication reminder failed", map[string]any{
				"medication_id": m.ID,
				"tutor_id":      m.TutorID,
				"err":           err,
			})
		}
	}
	return m, nil
}

// Update reemplaza el formulario. No genera lembretes nuevos.
func (s *Service) Update(ctx context.Context, tutorID, id string, in Input) (Medication, error) {
	m, err := s.GetByID(ctx, tutorID, id)
	if err != nil {
		return Medication{}, err
	}

	m = apply(m, in)
	if err := validate(m); err != nil {
		return Medication{}, err
	}

	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

// SetActive pausa o reactiva.
func (s *Service) SetActive(ctx context.Context, tutorID, id string, active bool) (Medication, error) {
	m, err := s.GetByID(ctx, tutorID, id)
	if err != nil {
		return Medication{}, err
	}
	m.Active = active
	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, tutorID, id string) (Medication, error) {
	if strings.TrimSpace(id) == "" {
		return Medication{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, tutorID, id)
}

func (s *Service) List(ctx context.Context, tutorID, petID string) ([]Medication, error) {
	return s.repo.List(ctx, tutorID, petID)
}

// ActiveNow: los que están en curso (ni pausados ni terminados).
func (s *Service) ActiveNow(ctx context.Context, tutorID string) ([]Medication, error) {
	items, err := s.repo.List(ctx, tutorID, "")
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]Medication, 0, len(items))
	for _, m := range items {
		if m.StatusAt(now) == StatusActive {
			out = append(out, m)
		}
	}
	return out, nil
}

// Delete borra el medicamento y cierra sus lembretes.
func (s *Service) Delete(ctx context.Context, tutorID, id string) error {
	if _, err := s.GetByID(ctx, tutorID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tutorID, id); err != nil {
		return err
	}
	if s.hook != nil {
		if err := s.hook.CloseBySource(ctx, tutorID, reminders.SourceMedication, id); err != nil {
			s.log.Warn("closing medication reminders failed", map[string]any{
				"medication_id": id,
				"tutor_id":      tutorID,
				"err":           err,
			})
		}
	}
	return nil
}

func (s *Service) Now() time.Time { return s.now() }

func apply(m Medication, in Input) Medication {
	m.Name = strings.TrimSpace(in.Name)
	m.Dosage = strings.TrimSpace(in.Dosage)
	m.Frequency = strings.TrimSpace(in.Frequency)
	m.StartsAt = in.StartsAt
	m.EndsOn = in.EndsOn
	m.Notes = strings.TrimSpace(in.Notes)
	if in.Active != nil {
		m.Active = *in.Active
	}
	return m
}

func validate(m Medication) error {
	switch {
	case m.Name == "":
		return fmt.Errorf("%w: nome_medicamento is required", ErrInvalidInput)
	case m.Dosage == "":
		return fmt.Errorf("%w: dosagem is required", ErrInvalidInput)
	case m.Frequency == "":
		return fmt.Errorf("%w: frequencia is required", ErrInvalidInput)
	case m.StartsAt.IsZero():
		return fmt.Errorf("%w: data_inicio is required", ErrInvalidInput)
	case m.EndsOn != nil && m.EndsOn.Before(time.Date(m.StartsAt.Year(), m.StartsAt.Month(), m.StartsAt.Day(), 0, 0, 0, 0, time.UTC)):
		return fmt.Errorf("%w: data_termino cannot be before data_inicio", ErrInvalidInput)
	}
	return nil
}
