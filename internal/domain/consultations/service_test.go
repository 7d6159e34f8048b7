package consultations

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Consultation
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Consultation{}}
}

func (r *testRepo) Create(_ context.Context, c Consultation) error {
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) Update(_ context.Context, c Consultation) error {
	r.byID[c.ID] = c
	return nil
}

func (r *testRepo) GetByID(_ context.Context, tutorID, id string) (Consultation, error) {
	c, ok := r.byID[id]
	if !ok || c.TutorID != tutorID {
		return Consultation{}, ErrNotFound
	}
	return c, nil
}

func (r *testRepo) List(_ context.Context, tutorID string, f ListFilter) ([]Consultation, error) {
	out := make([]Consultation, 0)
	for _, c := range r.byID {
		if c.TutorID == tutorID && f.Matches(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, _, id string) error {
	delete(r.byID, id)
	return nil
}

var fixedNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func newTestService() *Service {
	svc := NewService(newTestRepo())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestService_Create_Defaults(t *testing.T) {
	svc := newTestService()

	c, err := svc.Create(context.Background(), "tutor-1", "pet-1", Input{ScheduledAt: fixedNow.Add(time.Hour), Clinic: " Vet Centro "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Kind != KindRoutine || c.Status != StatusScheduled || c.Clinic != "Vet Centro" {
		t.Fatalf("unexpected consultation: %+v", c)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := newTestService()
	neg := -10.0
	when := fixedNow.Add(time.Hour)

	cases := map[string]Input{
		"missing date":   {},
		"bad kind":       {ScheduledAt: when, Kind: "spa"},
		"bad status":     {ScheduledAt: when, Status: "pendente"},
		"negative price": {ScheduledAt: when, Price: &neg},
	}
	for name, in := range cases {
		if _, err := svc.Create(context.Background(), "tutor-1", "pet-1", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
	if _, err := svc.Create(context.Background(), "tutor-1", "", Input{ScheduledAt: when}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing pet: expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Upcoming(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, _ = svc.Create(ctx, "tutor-1", "pet-1", Input{ScheduledAt: fixedNow.Add(-time.Hour)})
	_, _ = svc.Create(ctx, "tutor-1", "pet-1", Input{ScheduledAt: fixedNow.Add(48 * time.Hour), Status: "cancelada"})
	next, _ := svc.Create(ctx, "tutor-1", "pet-1", Input{ScheduledAt: fixedNow.Add(24 * time.Hour)})
	_, _ = svc.Create(ctx, "tutor-2", "pet-9", Input{ScheduledAt: fixedNow.Add(24 * time.Hour)})

	items, err := svc.Upcoming(ctx, "tutor-1", 5)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(items) != 1 || items[0].ID != next.ID {
		t.Fatalf("expected only the scheduled future consultation, got %+v", items)
	}
}

func TestService_Update_OtherTutorNotFound(t *testing.T) {
	svc := newTestService()
	c, _ := svc.Create(context.Background(), "tutor-1", "pet-1", Input{ScheduledAt: fixedNow})

	_, err := svc.Update(context.Background(), "tutor-2", c.ID, Input{ScheduledAt: fixedNow, Status: "realizada"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
