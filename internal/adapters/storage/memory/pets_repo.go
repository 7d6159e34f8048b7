package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"petcheck/internal/domain/pets"
)

type petRepo struct {
	s *Store
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.s.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, exists := r.s.pets[p.ID]
	if !exists || cur.TutorID != p.TutorID {
		return pets.ErrNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, tutorID, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok || p.TutorID != tutorID {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByTutor(ctx context.Context, tutorID string) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.TutorID == tutorID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Delete replica las FK: cascade en consultas/vacinas/medicamentos y
// SET NULL en lembretes.
func (r *petRepo) Delete(ctx context.Context, tutorID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.pets[id]
	if !ok || p.TutorID != tutorID {
		return pets.ErrNotFound
	}
	delete(r.s.pets, id)

	for k, c := range r.s.consultations {
		if c.PetID == id {
			delete(r.s.consultations, k)
		}
	}
	for k, v := range r.s.vaccines {
		if v.PetID == id {
			delete(r.s.vaccines, k)
		}
	}
	for k, m := range r.s.medications {
		if m.PetID == id {
			delete(r.s.medications, k)
		}
	}
	for k, rem := range r.s.reminders {
		if rem.PetID != nil && *rem.PetID == id {
			rem.PetID = nil
			r.s.reminders[k] = rem
		}
	}
	return nil
}
