package dashboard

import (
	"context"
	"time"

	"petcheck/internal/domain/consultations"
	"petcheck/internal/domain/medications"
	"petcheck/internal/domain/pets"
	"petcheck/internal/domain/reminders"
	"petcheck/internal/domain/vaccines"

	"golang.org/x/sync/errgroup"
)

const upcomingConsultationsLimit = 5

type PetSource interface {
	ListByTutor(ctx context.Context, tutorID string) ([]pets.Pet, error)
}

type ConsultationSource interface {
	Upcoming(ctx context.Context, tutorID string, limit int) ([]consultations.Consultation, error)
}

type ReminderSource interface {
	Urgent(ctx context.Context, tutorID string) ([]reminders.Reminder, error)
}

type VaccineSource interface {
	Alerts(ctx context.Context, tutorID string) ([]vaccines.Vaccine, error)
}

type MedicationSource interface {
	ActiveNow(ctx context.Context, tutorID string) ([]medications.Medication, error)
}

type Sources struct {
	Pets          PetSource
	Consultations ConsultationSource
	Reminders     ReminderSource
	Vaccines      VaccineSource
	Medications   MedicationSource
}

type Summary struct {
	Pets                  []pets.Pet
	UpcomingConsultations []consultations.Consultation
	UrgentReminders       []reminders.Reminder
	VaccineAlerts         []vaccines.Vaccine
	ActiveMedications     []medications.Medication
	GeneratedAt           time.Time
}

type Service struct {
	src Sources
	now func() time.Time
}

func NewService(src Sources) *Service {
	return &Service{src: src, now: time.Now}
}

// Summary junta las lecturas en paralelo; si una falla se cancela el resto.
func (s *Service) Summary(ctx context.Context, tutorID string) (Summary, error) {
	out := Summary{GeneratedAt: s.now()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Pets, err = s.src.Pets.ListByTutor(gctx, tutorID)
		return err
	})
	g.Go(func() error {
		var err error
		out.UpcomingConsultations, err = s.src.Consultations.Upcoming(gctx, tutorID, upcomingConsultationsLimit)
		return err
	})
	g.Go(func() error {
		var err error
		out.UrgentReminders, err = s.src.Reminders.Urgent(gctx, tutorID)
		return err
	})
	g.Go(func() error {
		var err error
		out.VaccineAlerts, err = s.src.Vaccines.Alerts(gctx, tutorID)
		return err
	})
	g.Go(func() error {
		var err error
		out.ActiveMedications, err = s.src.Medications.ActiveNow(gctx, tutorID)
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return out, nil
}
