package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcheck/internal/domain/pets"
	"petcheck/internal/domain/reminders"
)

type testRepo struct {
	byID map[string]Medication
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medication{}}
}

func (r *testRepo) Create(_ context.Context, m Medication) error {
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(_ context.Context, m Medication) error {
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(_ context.Context, tutorID, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok || m.TutorID != tutorID {
		return Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *testRepo) List(_ context.Context, tutorID, petID string) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.TutorID == tutorID && (petID == "" || m.PetID == petID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, _, id string) error {
	delete(r.byID, id)
	return nil
}

var (
	fixedNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	thor     = pets.Pet{ID: "pet-1", TutorID: "tutor-1", Name: "Thor"}
)

// Usa el builder real a través de reminders.Service con repo propio.
type reminderRepo struct {
	items []reminders.Reminder
}

func (r *reminderRepo) Create(_ context.Context, rem reminders.Reminder) error {
	r.items = append(r.items, rem)
	return nil
}
func (r *reminderRepo) Update(context.Context, reminders.Reminder) error { return nil }
func (r *reminderRepo) GetByID(context.Context, string, string) (reminders.Reminder, error) {
	return reminders.Reminder{}, reminders.ErrNotFound
}
func (r *reminderRepo) List(context.Context, string, reminders.ListFilter) ([]reminders.Reminder, error) {
	return r.items, nil
}
func (r *reminderRepo) Delete(context.Context, string, string) error { return nil }
func (r *reminderRepo) CloseBySource(_ context.Context, tutorID string, source reminders.Source, sourceID string, at time.Time) (int, error) {
	n := 0
	for i, rem := range r.items {
		if rem.TutorID == tutorID && rem.Source == source && rem.SourceID == sourceID && rem.Status == reminders.StatusActive {
			r.items[i].Status = reminders.StatusDone
			r.items[i].UpdatedAt = at
			n++
		}
	}
	return n, nil
}

func newTestService() (*Service, *reminderRepo) {
	rr := &reminderRepo{}
	remSvc := reminders.NewService(rr, nil, nil)
	svc := NewService(newTestRepo(), remSvc, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, rr
}

func TestService_Create_SchedulesDailyReminder(t *testing.T) {
	svc, rr := newTestService()

	m, err := svc.Create(context.Background(), "tutor-1", thor, Input{
		Name:      "Amoxicilina",
		Dosage:    "250mg",
		Frequency: "2x ao dia",
		StartsAt:  time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !m.Active {
		t.Fatalf("medication must default to active")
	}
	if len(rr.items) != 1 {
		t.Fatalf("expected one reminder, got %d", len(rr.items))
	}
	rem := rr.items[0]
	if rem.Recurrence != reminders.RecurrenceDaily || rem.AdvanceMinutes == nil || *rem.AdvanceMinutes != 30 {
		t.Fatalf("unexpected reminder: %+v", rem)
	}
	if rem.SourceID != m.ID || rem.Source != reminders.SourceMedication {
		t.Fatalf("reminder must point to the medication: %+v", rem)
	}
}

func TestService_Create_InactiveSkipsReminder(t *testing.T) {
	svc, rr := newTestService()
	off := false

	_, err := svc.Create(context.Background(), "tutor-1", thor, Input{
		Name: "A", Dosage: "1", Frequency: "1x ao dia", StartsAt: time.Now().Add(time.Hour), Active: &off,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(rr.items) != 0 {
		t.Fatalf("inactive medication must not schedule a reminder")
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()
	start := fixedNow
	before := fixedNow.AddDate(0, 0, -2)

	cases := map[string]Input{
		"missing name":      {Dosage: "1", Frequency: "x", StartsAt: start},
		"missing dosage":    {Name: "A", Frequency: "x", StartsAt: start},
		"missing frequency": {Name: "A", Dosage: "1", StartsAt: start},
		"missing start":     {Name: "A", Dosage: "1", Frequency: "x"},
		"end before start":  {Name: "A", Dosage: "1", Frequency: "x", StartsAt: start, EndsOn: &before},
	}
	for name, in := range cases {
		if _, err := svc.Create(context.Background(), "tutor-1", thor, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestMedication_StatusAt(t *testing.T) {
	yesterday := fixedNow.AddDate(0, 0, -1)
	today := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	if s := (Medication{Active: false}).StatusAt(fixedNow); s != StatusPaused {
		t.Fatalf("expected paused, got %s", s)
	}
	if s := (Medication{Active: true, EndsOn: &yesterday}).StatusAt(fixedNow); s != StatusFinished {
		t.Fatalf("expected finished, got %s", s)
	}
	if s := (Medication{Active: true, EndsOn: &today}).StatusAt(fixedNow); s != StatusActive {
		t.Fatalf("last day is still active, got %s", s)
	}
}

func TestService_SetActive_OtherTutor(t *testing.T) {
	svc, _ := newTestService()
	m, _ := svc.Create(context.Background(), "tutor-1", thor, Input{Name: "A", Dosage: "1", Frequency: "x", StartsAt: fixedNow})

	if _, err := svc.SetActive(context.Background(), "tutor-2", m.ID, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	paused, err := svc.SetActive(context.Background(), "tutor-1", m.ID, false)
	if err != nil || paused.StatusAt(fixedNow) != StatusPaused {
		t.Fatalf("SetActive: %+v err=%v", paused, err)
	}
}

func TestService_Delete_ClosesReminders(t *testing.T) {
	svc, rr := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "tutor-1", thor, Input{
		Name: "Amoxicilina", Dosage: "250mg", Frequency: "diária", StartsAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil || len(rr.items) != 1 {
		t.Fatalf("Create: %v reminders=%d", err, len(rr.items))
	}

	if err := svc.Delete(ctx, "tutor-2", m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other tutor: expected ErrNotFound, got %v", err)
	}
	if rr.items[0].Status != reminders.StatusActive {
		t.Fatalf("foreign delete must not close the reminder")
	}

	if err := svc.Delete(ctx, "tutor-1", m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rr.items[0].Status != reminders.StatusDone {
		t.Fatalf("daily reminder must be closed with the medication, got %s", rr.items[0].Status)
	}
}
