package memory

import (
	"context"
	"errors"
	"sort"

	"petcheck/internal/domain/medications"
)

type medicationRepo struct {
	s *Store
}

func (r *medicationRepo) Create(ctx context.Context, m medications.Medication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if m.ID == "" {
		return errors.New("medication id required")
	}
	r.s.medications[m.ID] = m
	return nil
}

func (r *medicationRepo) Update(ctx context.Context, m medications.Medication) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.medications[m.ID]
	if !ok || cur.TutorID != m.TutorID {
		return medications.ErrNotFound
	}
	r.s.medications[m.ID] = m
	return nil
}

func (r *medicationRepo) GetByID(ctx context.Context, tutorID, id string) (medications.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.medications[id]
	if !ok || m.TutorID != tutorID {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, nil
}

func (r *medicationRepo) List(ctx context.Context, tutorID, petID string) ([]medications.Medication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]medications.Medication, 0)
	for _, m := range r.s.medications {
		if m.TutorID == tutorID && (petID == "" || m.PetID == petID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.After(out[j].StartsAt) })
	return out, nil
}

func (r *medicationRepo) Delete(ctx context.Context, tutorID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.medications[id]
	if !ok || m.TutorID != tutorID {
		return medications.ErrNotFound
	}
	delete(r.s.medications, id)
	return nil
}
