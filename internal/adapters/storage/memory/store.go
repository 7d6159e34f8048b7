package memory

import (
	"sync"

	"petcheck/internal/domain/consultations"
	"petcheck/internal/domain/medications"
	"petcheck/internal/domain/pets"
	"petcheck/internal/domain/preferences"
	"petcheck/internal/domain/reminders"
	"petcheck/internal/domain/vaccines"
)

// Store comparte un único lock entre todos los repos para poder imitar los
// ON DELETE de Postgres al borrar un pet. Para dev y tests.
type Store struct {
	mu sync.RWMutex

	pets          map[string]pets.Pet
	consultations map[string]consultations.Consultation
	vaccines      map[string]vaccines.Vaccine
	medications   map[string]medications.Medication
	reminders     map[string]reminders.Reminder
	preferences   map[string]preferences.Preference
}

func NewStore() *Store {
	return &Store{
		pets:          make(map[string]pets.Pet),
		consultations: make(map[string]consultations.Consultation),
		vaccines:      make(map[string]vaccines.Vaccine),
		medications:   make(map[string]medications.Medication),
		reminders:     make(map[string]reminders.Reminder),
		preferences:   make(map[string]preferences.Preference),
	}
}

func (s *Store) Pets() pets.Repository                   { return &petRepo{s: s} }
func (s *Store) Consultations() consultations.Repository { return &consultationRepo{s: s} }
func (s *Store) Vaccines() vaccines.Repository           { return &vaccineRepo{s: s} }
func (s *Store) Medications() medications.Repository     { return &medicationRepo{s: s} }
func (s *Store) Reminders() reminders.Repository         { return &reminderRepo{s: s} }
func (s *Store) Preferences() preferences.Repository     { return &preferenceRepo{s: s} }
