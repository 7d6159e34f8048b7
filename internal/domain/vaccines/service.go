package vaccines

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
	ErrNotFound     = errors.New("vaccine not found")
)

// ReminderHook recibe la próxima dosis. *reminders.Service lo implementa.
type ReminderHook interface {
	OnVaccineNextDose(ctx context.Context, ev reminders.VaccineNextDose) (*reminders.Reminder, error)
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
	Name         string
	AppliedOn    time.Time
	NextDoseOn   *time.Time
	Veterinarian string
	Clinic       string
	Batch        string
	Notes        string
}

// Create guarda la vacina y, si tiene próxima dosis futura, agenda el lembrete.
// Si el lembrete falla la vacina queda igual.
func (s *Service) Create(ctx context.Context, tutorID string, pet pets.Pet, in Input) (Vaccine, error) {
	if strings.TrimSpace(tutorID) == "" || pet.ID == "" {
		return Vaccine{}, fmt.Errorf("%w: pet_id is required", ErrInvalidInput)
	}

	now := s.now()
	v := apply(Vaccine{
		ID:        uuid.NewString(),
		TutorID:   tutorID,
		PetID:     pet.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}, in)

	if err := validate(v); err != nil {
		return Vaccine{}, err
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccine{}, err
	}

	s.scheduleNextDose(ctx, v, pet.Name)
	return v, nil
}

// Update reemplaza el formulario. Si cambió la próxima dosis se cierra el
// lembrete anterior y se agenda otro.
func (s *Service) Update(ctx context.Context, tutorID, id string, pet pets.Pet, in Input) (Vaccine, error) {
	v, err := s.GetByID(ctx, tutorID, id)
	if err != nil {
		return Vaccine{}, err
	}
	prevNext := v.NextDoseOn

	v = apply(v, in)
	if err := validate(v); err != nil {
		return Vaccine{}, err
	}

	v.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, v); err != nil {
		return Vaccine{}, err
	}

	if !sameDay(prevNext, v.NextDoseOn) {
		s.closeReminders(ctx, v.TutorID, v.ID)
		s.scheduleNextDose(ctx, v, pet.Name)
	}
	return v, nil
}

func (s *Service) scheduleNextDose(ctx context.Context, v Vaccine, petName string) {
	if s.hook == nil {
		return
	}
	_, err := s.hook.OnVaccineNextDose(ctx, reminders.VaccineNextDose{
		TutorID:     v.TutorID,
		PetID:       v.PetID,
		PetName:     petName,
		VaccineID:   v.ID,
		VaccineName: v.Name,
		NextDoseAt:  v.NextDoseOn,
	})
	if err != nil {
		s.log.Warn("next dose reminder failed", map[string]any{
			"vaccine_id": v.ID,
			"tutor_id":   v.TutorID,
			"err":        err,
		})
	}
}

func (s *Service) closeReminders(ctx context.Context, tutorID, vaccineID string) {
	if s.hook == nil {
		return
	}
	if err := s.hook.CloseBySource(ctx, tutorID, reminders.SourceVaccine, vaccineID); err != nil {
		s.log.Warn("closing vaccine reminders failed", map[string]any{
			"vaccine_id": vaccineID,
			"tutor_id":   tutorID,
			"err":        err,
		})
	}
}

func (s *Service) GetByID(ctx context.Context, tutorID, id string) (Vaccine, error) {
	if strings.TrimSpace(id) == "" {
		return Vaccine{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, tutorID, id)
}

func (s *Service) List(ctx context.Context, tutorID, petID string) ([]Vaccine, error) {
	return s.repo.List(ctx, tutorID, petID)
}

// Alerts devuelve las vacinas vencidas o próximas, las vencidas primero.
func (s *Service) Alerts(ctx context.Context, tutorID string) ([]Vaccine, error) {
	items, err := s.repo.List(ctx, tutorID, "")
	if err != nil {
		return nil, err
	}

	now := s.now()
	var overdue, upcoming []Vaccine
	for _, v := range items {
		switch v.StatusAt(now) {
		case StatusOverdue:
			overdue = append(overdue, v)
		case StatusUpcoming:
			upcoming = append(upcoming, v)
		}
	}
	return append(overdue, upcoming...), nil
}

// Delete borra la vacina y cierra sus lembretes de próxima dosis.
func (s *Service) Delete(ctx context.Context, tutorID, id string) error {
	if _, err := s.GetByID(ctx, tutorID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, tutorID, id); err != nil {
		return err
	}
	s.closeReminders(ctx, tutorID, id)
	return nil
}

// Now lo usa el handler para calcular el status de la respuesta.
func (s *Service) Now() time.Time { return s.now() }

func apply(v Vaccine, in Input) Vaccine {
	v.Name = strings.TrimSpace(in.Name)
	v.AppliedOn = in.AppliedOn
	v.NextDoseOn = in.NextDoseOn
	v.Veterinarian = strings.TrimSpace(in.Veterinarian)
	v.Clinic = strings.TrimSpace(in.Clinic)
	v.Batch = strings.TrimSpace(in.Batch)
	v.Notes = strings.TrimSpace(in.Notes)
	return v
}

func validate(v Vaccine) error {
	if v.Name == "" {
		return fmt.Errorf("%w: nome_vacina is required", ErrInvalidInput)
	}
	if v.AppliedOn.IsZero() {
		return fmt.Errorf("%w: data_aplicacao is required", ErrInvalidInput)
	}
	if v.NextDoseOn != nil && v.NextDoseOn.Before(v.AppliedOn) {
		return fmt.Errorf("%w: data_proxima_dose cannot be before data_aplicacao", ErrInvalidInput)
	}
	return nil
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Format(time.DateOnly) == b.Format(time.DateOnly)
}
