package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petcheck/internal/domain/preferences"
)

type PreferencesRepo struct {
	db *sql.DB
}

func NewPreferencesRepo(db *sql.DB) *PreferencesRepo {
	return &PreferencesRepo{db: db}
}

const preferenceColumns = `
	tutor_id, notify_minutes,
	consulta_adv_enabled, consulta_adv_minutes,
	lembrete_adv_enabled, lembrete_adv_minutes,
	updated_at`

func (r *PreferencesRepo) Get(ctx context.Context, tutorID string) (preferences.Preference, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+preferenceColumns+`
		FROM notification_preferences
		WHERE tutor_id = $1
	`, tutorID)

	p, err := scanPreference(row)
	if errors.Is(err, sql.ErrNoRows) {
		return preferences.Preference{}, preferences.ErrNotFound
	}
	return p, err
}

// Upsert: INSERT de la fila completa; en conflicto solo se pisan las
// columnas tocadas (más updated_at).
func (r *PreferencesRepo) Upsert(ctx context.Context, p preferences.Preference, touched preferences.ColumnSet) (preferences.Preference, error) {
	sets := []string{"updated_at = EXCLUDED.updated_at"}
	for _, c := range touched.Sorted() {
		// c viene de la lista cerrada preferences.Columns.
		sets = append(sets, string(c)+" = EXCLUDED."+string(c))
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO notification_preferences (`+preferenceColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (tutor_id) DO UPDATE SET `+strings.Join(sets, ", ")+`
		RETURNING `+preferenceColumns,
		p.TutorID,
		toNullInt(p.NotifyMinutes),
		p.ConsultAdvanceEnabled,
		toNullInt(p.ConsultAdvanceMinutes),
		p.ReminderAdvanceEnabled,
		toNullInt(p.ReminderAdvanceMinutes),
		p.UpdatedAt,
	)
	return scanPreference(row)
}

func scanPreference(s scanner) (preferences.Preference, error) {
	var (
		p                         preferences.Preference
		notify, consult, reminder sql.NullInt64
	)
	if err := s.Scan(
		&p.TutorID, &notify,
		&p.ConsultAdvanceEnabled, &consult,
		&p.ReminderAdvanceEnabled, &reminder,
		&p.UpdatedAt,
	); err != nil {
		return preferences.Preference{}, err
	}
	p.NotifyMinutes = fromNullInt(notify)
	p.ConsultAdvanceMinutes = fromNullInt(consult)
	p.ReminderAdvanceMinutes = fromNullInt(reminder)
	return p, nil
}
