package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(_ context.Context, p Pet) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(_ context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(_ context.Context, tutorID, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok || p.TutorID != tutorID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByTutor(_ context.Context, tutorID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.TutorID == tutorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, tutorID, id string) error {
	p, ok := r.byID[id]
	if !ok || p.TutorID != tutorID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var fixedNow = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return fixedNow }
	return svc, repo
}

func TestService_Create_DefaultsSpecies(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), "tutor-1", CreateInput{Name: "  Thor "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Thor" || p.Species != SpeciesDog {
		t.Fatalf("unexpected pet: %+v", p)
	}
	if p.CreatedAt != fixedNow || p.ID == "" {
		t.Fatalf("expected id and CreatedAt=now, got %+v", p)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()
	future := fixedNow.AddDate(0, 0, 1)
	ancient := fixedNow.AddDate(-61, 0, 0)
	zero := 0.0
	heavy := 1001.0

	cases := map[string]CreateInput{
		"missing name":  {Species: "gato"},
		"bad species":   {Name: "Rex", Species: "dragão"},
		"bad sex":       {Name: "Rex", Sex: "x"},
		"future birth":  {Name: "Rex", BirthDate: &future},
		"too old":       {Name: "Rex", BirthDate: &ancient},
		"zero weight":   {Name: "Rex", WeightKg: &zero},
		"too heavy":     {Name: "Rex", WeightKg: &heavy},
		"missing tutor": {},
	}
	for name, in := range cases {
		tutor := "tutor-1"
		if name == "missing tutor" {
			tutor = ""
		}
		if _, err := svc.Create(context.Background(), tutor, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestService_UpdateProfile_ClearsBirthDate(t *testing.T) {
	svc, _ := newTestService()
	bd := fixedNow.AddDate(-3, 0, 0)

	p, err := svc.Create(context.Background(), "tutor-1", CreateInput{Name: "Mia", Species: "gato", BirthDate: &bd})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newName := "Mia Luz"
	updated, err := svc.UpdateProfile(context.Background(), "tutor-1", p.ID, UpdateProfileInput{
		Name:      &newName,
		BirthDate: Present[time.Time]{Set: true},
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Mia Luz" || updated.BirthDate != nil {
		t.Fatalf("unexpected update: %+v", updated)
	}
	if updated.Species != SpeciesCat {
		t.Fatalf("untouched fields must be kept, got %+v", updated)
	}
}

func TestService_Delete_OtherTutorIsNotFound(t *testing.T) {
	svc, repo := newTestService()

	p, _ := svc.Create(context.Background(), "tutor-1", CreateInput{Name: "Bob"})

	err := svc.Delete(context.Background(), "tutor-2", p.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, ok := repo.byID[p.ID]; !ok {
		t.Fatalf("pet must remain in store")
	}

	if err := svc.Delete(context.Background(), "tutor-1", p.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, ok := repo.byID[p.ID]; ok {
		t.Fatalf("pet must be gone")
	}
}
