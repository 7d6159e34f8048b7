package memory

import (
	"context"
	"errors"
	"sort"

	"petcheck/internal/domain/consultations"
)

type consultationRepo struct {
	s *Store
}

func (r *consultationRepo) Create(ctx context.Context, c consultations.Consultation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c.ID == "" {
		return errors.New("consultation id required")
	}
	r.s.consultations[c.ID] = c
	return nil
}

func (r *consultationRepo) Update(ctx context.Context, c consultations.Consultation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.consultations[c.ID]
	if !ok || cur.TutorID != c.TutorID {
		return consultations.ErrNotFound
	}
	r.s.consultations[c.ID] = c
	return nil
}

func (r *consultationRepo) GetByID(ctx context.Context, tutorID, id string) (consultations.Consultation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.consultations[id]
	if !ok || c.TutorID != tutorID {
		return consultations.Consultation{}, consultations.ErrNotFound
	}
	return c, nil
}

func (r *consultationRepo) List(ctx context.Context, tutorID string, f consultations.ListFilter) ([]consultations.Consultation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]consultations.Consultation, 0)
	for _, c := range r.s.consultations {
		if c.TutorID == tutorID && f.Matches(c) {
			out = append(out, c)
		}
	}

	asc := f.From != nil
	sort.Slice(out, func(i, j int) bool {
		if asc {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ScheduledAt.After(out[j].ScheduledAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *consultationRepo) Delete(ctx context.Context, tutorID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.consultations[id]
	if !ok || c.TutorID != tutorID {
		return consultations.ErrNotFound
	}
	delete(r.s.consultations, id)
	return nil
}
