package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"petcheck/internal/domain/reminders"
)

type RemindersRepo struct {
	db *sql.DB
}

func NewRemindersRepo(db *sql.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

const reminderColumns = `
	id, tutor_id, pet_id,
	title, description, due_at,
	kind, status, recurrence,
	advance_notice_enabled, advance_notice_minutes,
	source, source_id,
	created_at, updated_at`

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (`+reminderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		rem.ID, rem.TutorID, toNullString(rem.PetID),
		rem.Title, rem.Description, rem.DueAt,
		string(rem.Kind), string(rem.Status), string(rem.Recurrence),
		rem.AdvanceEnabled, toNullInt(rem.AdvanceMinutes),
		string(rem.Source), rem.SourceID,
		rem.CreatedAt, rem.UpdatedAt,
	)
	return err
}

func (r *RemindersRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET
			pet_id = $3,
			title = $4,
			description = $5,
			due_at = $6,
			kind = $7,
			status = $8,
			recurrence = $9,
			advance_notice_enabled = $10,
			advance_notice_minutes = $11,
			updated_at = $12
		WHERE id = $1 AND tutor_id = $2
	`,
		rem.ID, rem.TutorID, toNullString(rem.PetID),
		rem.Title, rem.Description, rem.DueAt,
		string(rem.Kind), string(rem.Status), string(rem.Recurrence),
		rem.AdvanceEnabled, toNullInt(rem.AdvanceMinutes),
		rem.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, reminders.ErrNotFound)
}

func (r *RemindersRepo) GetByID(ctx context.Context, tutorID, id string) (reminders.Reminder, error) {
	if !validID(id) {
		return reminders.Reminder{}, reminders.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE id = $1 AND tutor_id = $2
	`, id, tutorID)

	rem, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return rem, err
}

func (r *RemindersRepo) List(ctx context.Context, tutorID string, f reminders.ListFilter) ([]reminders.Reminder, error) {
	where := []string{"tutor_id = $1"}
	args := []any{tutorID}

	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.PetID != "" {
		if !validID(f.PetID) {
			return []reminders.Reminder{}, nil
		}
		args = append(args, f.PetID)
		where = append(where, fmt.Sprintf("pet_id = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("due_at >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("due_at <= $%d", len(args)))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY due_at ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func (r *RemindersRepo) Delete(ctx context.Context, tutorID, id string) error {
	if !validID(id) {
		return reminders.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1 AND tutor_id = $2`, id, tutorID)
	if err != nil {
		return err
	}
	return rowsAffected(res, reminders.ErrNotFound)
}

func (r *RemindersRepo) CloseBySource(ctx context.Context, tutorID string, source reminders.Source, sourceID string, at time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET status = $5, updated_at = $6
		WHERE tutor_id = $1 AND source = $2 AND source_id = $3 AND status = $4
	`, tutorID, string(source), sourceID, string(reminders.StatusActive), string(reminders.StatusDone), at)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func scanReminder(s scanner) (reminders.Reminder, error) {
	var (
		rem     reminders.Reminder
		petID   sql.NullString
		minutes sql.NullInt64
	)
	if err := s.Scan(
		&rem.ID, &rem.TutorID, &petID,
		&rem.Title, &rem.Description, &rem.DueAt,
		&rem.Kind, &rem.Status, &rem.Recurrence,
		&rem.AdvanceEnabled, &minutes,
		&rem.Source, &rem.SourceID,
		&rem.CreatedAt, &rem.UpdatedAt,
	); err != nil {
		return reminders.Reminder{}, err
	}
	rem.PetID = fromNullString(petID)
	rem.AdvanceMinutes = fromNullInt(minutes)
	return rem, nil
}
