package memory

import (
	"context"
	"errors"
	"sort"
	"time"

	"petcheck/internal/domain/reminders"
)

type reminderRepo struct {
	s *Store
}

func (r *reminderRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if rem.ID == "" {
		return errors.New("reminder id required")
	}
	r.s.reminders[rem.ID] = rem
	return nil
}

func (r *reminderRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.reminders[rem.ID]
	if !ok || cur.TutorID != rem.TutorID {
		return reminders.ErrNotFound
	}
	r.s.reminders[rem.ID] = rem
	return nil
}

func (r *reminderRepo) GetByID(ctx context.Context, tutorID, id string) (reminders.Reminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rem, ok := r.s.reminders[id]
	if !ok || rem.TutorID != tutorID {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return rem, nil
}

func (r *reminderRepo) List(ctx context.Context, tutorID string, f reminders.ListFilter) ([]reminders.Reminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]reminders.Reminder, 0)
	for _, rem := range r.s.reminders {
		if rem.TutorID == tutorID && f.Matches(rem) {
			out = append(out, rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt.Before(out[j].DueAt) })
	return out, nil
}

func (r *reminderRepo) Delete(ctx context.Context, tutorID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rem, ok := r.s.reminders[id]
	if !ok || rem.TutorID != tutorID {
		return reminders.ErrNotFound
	}
	delete(r.s.reminders, id)
	return nil
}

func (r *reminderRepo) CloseBySource(ctx context.Context, tutorID string, source reminders.Source, sourceID string, at time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for id, rem := range r.s.reminders {
		if rem.TutorID != tutorID || rem.Source != source || rem.SourceID != sourceID || rem.Status != reminders.StatusActive {
			continue
		}
		rem.Status = reminders.StatusDone
		rem.UpdatedAt = at
		r.s.reminders[id] = rem
		n++
	}
	return n, nil
}
