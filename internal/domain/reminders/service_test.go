package reminders

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"petcheck/internal/ports/notify"
)

type testRepo struct {
	byID map[string]Reminder
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Reminder{}}
}

func (r *testRepo) Create(_ context.Context, rem Reminder) error {
	r.byID[rem.ID] = rem
	return nil
}

func (r *testRepo) Update(_ context.Context, rem Reminder) error {
	if _, ok := r.byID[rem.ID]; !ok {
		return ErrNotFound
	}
	r.byID[rem.ID] = rem
	return nil
}

func (r *testRepo) GetByID(_ context.Context, tutorID, id string) (Reminder, error) {
	rem, ok := r.byID[id]
	if !ok || rem.TutorID != tutorID {
		return Reminder{}, ErrNotFound
	}
	return rem, nil
}

func (r *testRepo) List(_ context.Context, tutorID string, f ListFilter) ([]Reminder, error) {
	out := make([]Reminder, 0)
	for _, rem := range r.byID {
		if rem.TutorID == tutorID && f.Matches(rem) {
			out = append(out, rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, tutorID, id string) error {
	rem, ok := r.byID[id]
	if !ok || rem.TutorID != tutorID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) CloseBySource(_ context.Context, tutorID string, source Source, sourceID string, at time.Time) (int, error) {
	n := 0
	for id, rem := range r.byID {
		if rem.TutorID == tutorID && rem.Source == source && rem.SourceID == sourceID && rem.Status == StatusActive {
			rem.Status = StatusDone
			rem.UpdatedAt = at
			r.byID[id] = rem
			n++
		}
	}
	return n, nil
}

type testNotifier struct {
	err  error
	sent []notify.ReminderRequest
}

func (n *testNotifier) CreateReminder(_ context.Context, req notify.ReminderRequest) error {
	n.sent = append(n.sent, req)
	return n.err
}

func newTestService(n notify.Notifier) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, n, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func TestService_Schedule_NotifiesAfterPersisting(t *testing.T) {
	n := &testNotifier{}
	svc, repo := newTestService(n)

	d, _ := FromForm("tutor-1", FormInput{Title: "Vermífugo", DueAt: fixedNow.Add(time.Hour)})
	rem, res, err := svc.Schedule(context.Background(), d)
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if !res.Delivered {
		t.Fatalf("expected delivered, got %+v", res)
	}
	if _, ok := repo.byID[rem.ID]; !ok {
		t.Fatalf("reminder must be stored")
	}
	if len(n.sent) != 1 || n.sent[0].Title != "Vermífugo" {
		t.Fatalf("unexpected notifications: %+v", n.sent)
	}
}

func TestService_Schedule_NotifyFailureKeepsReminder(t *testing.T) {
	n := &testNotifier{err: errors.New("connection refused")}
	svc, repo := newTestService(n)

	rem, err := svc.CreateFromForm(context.Background(), "tutor-1", FormInput{Title: "x", DueAt: fixedNow.Add(time.Hour)})
	if err != nil {
		t.Fatalf("notification failure must not surface: %v", err)
	}
	if _, ok := repo.byID[rem.ID]; !ok {
		t.Fatalf("reminder must be stored even if notification fails")
	}
}

func TestService_Schedule_NilNotifierSkips(t *testing.T) {
	svc, _ := newTestService(nil)

	d, _ := FromForm("tutor-1", FormInput{Title: "x", DueAt: fixedNow.Add(time.Hour)})
	_, res, err := svc.Schedule(context.Background(), d)
	if err != nil || !res.Skipped {
		t.Fatalf("expected skipped, got %+v err=%v", res, err)
	}
}

func TestService_OnVaccineNextDose_NoNextDose(t *testing.T) {
	n := &testNotifier{}
	svc, repo := newTestService(n)

	rem, err := svc.OnVaccineNextDose(context.Background(), VaccineNextDose{TutorID: "tutor-1", VaccineName: "V10"})
	if err != nil || rem != nil {
		t.Fatalf("expected no reminder, got %+v err=%v", rem, err)
	}
	if len(repo.byID) != 0 || len(n.sent) != 0 {
		t.Fatalf("nothing must be stored or sent")
	}
}

func TestService_MarkDoneAndOwnership(t *testing.T) {
	svc, _ := newTestService(nil)

	rem, _ := svc.CreateFromForm(context.Background(), "tutor-1", FormInput{Title: "x", DueAt: fixedNow.Add(time.Hour)})

	if _, err := svc.MarkDone(context.Background(), "tutor-2", rem.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other tutor must get ErrNotFound, got %v", err)
	}

	done, err := svc.MarkDone(context.Background(), "tutor-1", rem.ID)
	if err != nil || done.Status != StatusDone {
		t.Fatalf("MarkDone: %+v err=%v", done, err)
	}

	active, _ := svc.Active(context.Background(), "tutor-1")
	if len(active) != 0 {
		t.Fatalf("done reminder must not be active")
	}
}

func TestService_UpdateKeepsSource(t *testing.T) {
	svc, _ := newTestService(nil)

	start := fixedNow.Add(72 * time.Hour)
	rem, err := svc.OnMedicationCreated(context.Background(), MedicationCreated{
		TutorID: "tutor-1", PetID: "pet-1", MedicationID: "med-1", Name: "A", Dosage: "1", Frequency: "semanal", StartsAt: start, Active: true,
	})
	if err != nil || rem == nil {
		t.Fatalf("OnMedicationCreated: %+v err=%v", rem, err)
	}

	updated, err := svc.Update(context.Background(), "tutor-1", rem.ID, FormInput{Title: "Renamed", DueAt: start, Recurrence: "semanal"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Source != SourceMedication || updated.SourceID != "med-1" || updated.Title != "Renamed" {
		t.Fatalf("unexpected update: %+v", updated)
	}
}

func TestService_CloseBySource_OnlyTouchesThatSource(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	next := fixedNow.AddDate(0, 0, 10)
	fromVaccine, _ := svc.OnVaccineNextDose(ctx, VaccineNextDose{TutorID: "tutor-1", PetID: "pet-1", VaccineID: "vac-1", VaccineName: "V10", NextDoseAt: &next})
	otherVaccine, _ := svc.OnVaccineNextDose(ctx, VaccineNextDose{TutorID: "tutor-1", PetID: "pet-1", VaccineID: "vac-2", VaccineName: "Raiva", NextDoseAt: &next})
	manual, _ := svc.CreateFromForm(ctx, "tutor-1", FormInput{Title: "x", DueAt: fixedNow.Add(time.Hour)})

	if err := svc.CloseBySource(ctx, "tutor-2", SourceVaccine, "vac-1"); err != nil {
		t.Fatalf("CloseBySource other tutor: %v", err)
	}
	if repo.byID[fromVaccine.ID].Status != StatusActive {
		t.Fatalf("other tutor must not close reminders")
	}

	if err := svc.CloseBySource(ctx, "tutor-1", SourceVaccine, "vac-1"); err != nil {
		t.Fatalf("CloseBySource: %v", err)
	}
	if got := repo.byID[fromVaccine.ID]; got.Status != StatusDone || !got.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("vaccine reminder must be done: %+v", got)
	}
	if repo.byID[otherVaccine.ID].Status != StatusActive || repo.byID[manual.ID].Status != StatusActive {
		t.Fatalf("other reminders must stay active")
	}

	if err := svc.CloseBySource(ctx, "tutor-1", SourceManual, ""); err != nil {
		t.Fatalf("manual source must be a no-op: %v", err)
	}
}
