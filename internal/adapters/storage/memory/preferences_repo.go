package memory

import (
	"context"

	"petcheck/internal/domain/preferences"
)

type preferenceRepo struct {
	s *Store
}

func (r *preferenceRepo) Get(ctx context.Context, tutorID string) (preferences.Preference, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.preferences[tutorID]
	if !ok {
		return preferences.Preference{}, preferences.ErrNotFound
	}
	return p, nil
}

// Upsert con la misma semántica que el ON CONFLICT de Postgres.
func (r *preferenceRepo) Upsert(ctx context.Context, p preferences.Preference, touched preferences.ColumnSet) (preferences.Preference, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.preferences[p.TutorID]
	if !ok {
		r.s.preferences[p.TutorID] = p
		return p, nil
	}

	for _, c := range touched.Sorted() {
		switch c {
		case preferences.ColNotifyMinutes:
			cur.NotifyMinutes = p.NotifyMinutes
		case preferences.ColConsultAdvanceEnabled:
			cur.ConsultAdvanceEnabled = p.ConsultAdvanceEnabled
		case preferences.ColConsultAdvanceMinutes:
			cur.ConsultAdvanceMinutes = p.ConsultAdvanceMinutes
		case preferences.ColReminderAdvanceEnabled:
			cur.ReminderAdvanceEnabled = p.ReminderAdvanceEnabled
		case preferences.ColReminderAdvanceMinutes:
			cur.ReminderAdvanceMinutes = p.ReminderAdvanceMinutes
		}
	}
	cur.UpdatedAt = p.UpdatedAt
	r.s.preferences[p.TutorID] = cur
	return cur, nil
}
