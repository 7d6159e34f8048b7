package reminders

import (
	"context"
	"errors"
	"strings"
	"time"

	"petcheck/internal/platform/logger"
	"petcheck/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("reminder not found")
)

// NotifyResult es el resultado del aviso al servicio externo. Los callers lo
// descartan a propósito: el lembrete ya quedó guardado.
type NotifyResult struct {
	Delivered bool
	Skipped   bool
	Err       error
}

type Service struct {
	repo     Repository
	notifier notify.Notifier
	log      logger.Logger
	now      func() time.Time
}

// NewService: notifier puede ser nil (sin servicio externo configurado).
func NewService(repo Repository, notifier notify.Notifier, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Schedule persiste el borrador y después avisa al servicio de notificaciones.
// Un fallo de notificación no deshace el lembrete.
func (s *Service) Schedule(ctx context.Context, d Draft) (Reminder, NotifyResult, error) {
	now := s.now()
	r := d.Reminder
	r.ID = uuid.NewString()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Status == "" {
		r.Status = StatusActive
	}
	if r.Source == "" {
		r.Source = SourceManual
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return Reminder{}, NotifyResult{}, err
	}

	return r, s.notify(ctx, r, d.Request), nil
}

func (s *Service) notify(ctx context.Context, r Reminder, req notify.ReminderRequest) NotifyResult {
	if s.notifier == nil {
		s.log.Debug("reminder notification skipped", map[string]any{"reminder_id": r.ID})
		return NotifyResult{Skipped: true}
	}
	if err := s.notifier.CreateReminder(ctx, req); err != nil {
		s.log.Warn("reminder notification failed", map[string]any{
			"reminder_id": r.ID,
			"tutor_id":    r.TutorID,
			"source":      string(r.Source),
			"err":         err,
		})
		return NotifyResult{Err: err}
	}
	return NotifyResult{Delivered: true}
}

func (s *Service) CreateFromForm(ctx context.Context, tutorID string, in FormInput) (Reminder, error) {
	d, err := FromForm(tutorID, in)
	if err != nil {
		return Reminder{}, err
	}
	r, _, err := s.Schedule(ctx, d)
	return r, err
}

// OnMedicationCreated devuelve nil si el medicamento no genera lembrete.
func (s *Service) OnMedicationCreated(ctx context.Context, ev MedicationCreated) (*Reminder, error) {
	d, ok := FromMedication(ev, s.now())
	if !ok {
		return nil, nil
	}
	r, _, err := s.Schedule(ctx, d)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// OnVaccineNextDose devuelve nil si la vacina no tiene próxima dosis futura.
func (s *Service) OnVaccineNextDose(ctx context.Context, ev VaccineNextDose) (*Reminder, error) {
	d, ok := FromVaccineNextDose(ev, s.now())
	if !ok {
		return nil, nil
	}
	r, _, err := s.Schedule(ctx, d)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) GetByID(ctx context.Context, tutorID, id string) (Reminder, error) {
	if strings.TrimSpace(id) == "" {
		return Reminder{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, tutorID, id)
}

func (s *Service) List(ctx context.Context, tutorID string, f ListFilter) ([]Reminder, error) {
	return s.repo.List(ctx, tutorID, f)
}

// Update reemplaza los campos del formulario; estado y origen se mantienen.
// No vuelve a notificar.
func (s *Service) Update(ctx context.Context, tutorID, id string, in FormInput) (Reminder, error) {
	r, err := s.GetByID(ctx, tutorID, id)
	if err != nil {
		return Reminder{}, err
	}

	r, err = applyForm(r, in)
	if err != nil {
		return Reminder{}, err
	}

	r.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, r); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// MarkDone es idempotente.
func (s *Service) MarkDone(ctx context.Context, tutorID, id string) (Reminder, error) {
	r, err := s.GetByID(ctx, tutorID, id)
	if err != nil {
		return Reminder{}, err
	}
	if r.Status == StatusDone {
		return r, nil
	}

	r.Status = StatusDone
	r.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, r); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, tutorID, id string) error {
	if _, err := s.GetByID(ctx, tutorID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, tutorID, id)
}

// CloseBySource cierra los lembretes activos de un registro de origen, para
// que no queden huérfanos al reagendar o borrar la vacina o el medicamento.
func (s *Service) CloseBySource(ctx context.Context, tutorID string, source Source, sourceID string) error {
	if strings.TrimSpace(sourceID) == "" || source == SourceManual {
		return nil
	}
	n, err := s.repo.CloseBySource(ctx, tutorID, source, sourceID, s.now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Debug("source reminders closed", map[string]any{
			"tutor_id":  tutorID,
			"source":    string(source),
			"source_id": sourceID,
			"closed":    n,
		})
	}
	return nil
}

// Overview agrupa los lembretes activos respecto de "ahora".
func (s *Service) Overview(ctx context.Context, tutorID string) (Overview, error) {
	items, err := s.repo.List(ctx, tutorID, ListFilter{Status: StatusActive})
	if err != nil {
		return Overview{}, err
	}
	return BuildOverview(items, s.now()), nil
}

// Urgent: vencidos, de hoy y de mañana. Lo usa el dashboard.
func (s *Service) Urgent(ctx context.Context, tutorID string) ([]Reminder, error) {
	ov, err := s.Overview(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	out := make([]Reminder, 0, len(ov.Overdue)+len(ov.Today)+len(ov.Tomorrow))
	out = append(out, ov.Overdue...)
	out = append(out, ov.Today...)
	out = append(out, ov.Tomorrow...)
	return out, nil
}

// Active devuelve los lembretes activos ordenados por fecha (feed .ics).
func (s *Service) Active(ctx context.Context, tutorID string) ([]Reminder, error) {
	return s.repo.List(ctx, tutorID, ListFilter{Status: StatusActive})
}
