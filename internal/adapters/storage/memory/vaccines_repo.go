package memory

import (
	"context"
	"errors"
	"sort"

	"petcheck/internal/domain/vaccines"
)

type vaccineRepo struct {
	s *Store
}

func (r *vaccineRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if v.ID == "" {
		return errors.New("vaccine id required")
	}
	r.s.vaccines[v.ID] = v
	return nil
}

func (r *vaccineRepo) Update(ctx context.Context, v vaccines.Vaccine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.vaccines[v.ID]
	if !ok || cur.TutorID != v.TutorID {
		return vaccines.ErrNotFound
	}
	r.s.vaccines[v.ID] = v
	return nil
}

func (r *vaccineRepo) GetByID(ctx context.Context, tutorID, id string) (vaccines.Vaccine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vaccines[id]
	if !ok || v.TutorID != tutorID {
		return vaccines.Vaccine{}, vaccines.ErrNotFound
	}
	return v, nil
}

func (r *vaccineRepo) List(ctx context.Context, tutorID, petID string) ([]vaccines.Vaccine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vaccines.Vaccine, 0)
	for _, v := range r.s.vaccines {
		if v.TutorID == tutorID && (petID == "" || v.PetID == petID) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppliedOn.Equal(out[j].AppliedOn) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].AppliedOn.After(out[j].AppliedOn)
	})
	return out, nil
}

func (r *vaccineRepo) Delete(ctx context.Context, tutorID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.vaccines[id]
	if !ok || v.TutorID != tutorID {
		return vaccines.ErrNotFound
	}
	delete(r.s.vaccines, id)
	return nil
}
