package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petcheck/internal/domain/consultations"
)

type ConsultationsRepo struct {
	db *sql.DB
}

func NewConsultationsRepo(db *sql.DB) *ConsultationsRepo {
	return &ConsultationsRepo{db: db}
}

const consultationColumns = `
	id, tutor_id, pet_id,
	kind, veterinarian, clinic, scheduled_at,
	diagnosis, treatment, notes, price, status,
	created_at, updated_at`

func (r *ConsultationsRepo) Create(ctx context.Context, c consultations.Consultation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO consultations (`+consultationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		c.ID, c.TutorID, c.PetID,
		string(c.Kind), c.Veterinarian, c.Clinic, c.ScheduledAt,
		c.Diagnosis, c.Treatment, c.Notes, toNullFloat(c.Price), string(c.Status),
		c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *ConsultationsRepo) Update(ctx context.Context, c consultations.Consultation) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE consultations
		SET
			kind = $3,
			veterinarian = $4,
			clinic = $5,
			scheduled_at = $6,
			diagnosis = $7,
			treatment = $8,
			notes = $9,
			price = $10,
			status = $11,
			updated_at = $12
		WHERE id = $1 AND tutor_id = $2
	`,
		c.ID, c.TutorID,
		string(c.Kind), c.Veterinarian, c.Clinic, c.ScheduledAt,
		c.Diagnosis, c.Treatment, c.Notes, toNullFloat(c.Price), string(c.Status),
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, consultations.ErrNotFound)
}

func (r *ConsultationsRepo) GetByID(ctx context.Context, tutorID, id string) (consultations.Consultation, error) {
	if !validID(id) {
		return consultations.Consultation{}, consultations.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+consultationColumns+`
		FROM consultations
		WHERE id = $1 AND tutor_id = $2
	`, id, tutorID)

	c, err := scanConsultation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return consultations.Consultation{}, consultations.ErrNotFound
	}
	return c, err
}

func (r *ConsultationsRepo) List(ctx context.Context, tutorID string, f consultations.ListFilter) ([]consultations.Consultation, error) {
	where := []string{"tutor_id = $1"}
	args := []any{tutorID}

	if f.PetID != "" {
		if !validID(f.PetID) {
			return []consultations.Consultation{}, nil
		}
		args = append(args, f.PetID)
		where = append(where, fmt.Sprintf("pet_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	order := "scheduled_at DESC"
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("scheduled_at >= $%d", len(args)))
		order = "scheduled_at ASC"
	}

	q := `SELECT ` + consultationColumns + ` FROM consultations WHERE ` + strings.Join(where, " AND ") + ` ORDER BY ` + order
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]consultations.Consultation, 0)
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ConsultationsRepo) Delete(ctx context.Context, tutorID, id string) error {
	if !validID(id) {
		return consultations.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM consultations WHERE id = $1 AND tutor_id = $2`, id, tutorID)
	if err != nil {
		return err
	}
	return rowsAffected(res, consultations.ErrNotFound)
}

func scanConsultation(s scanner) (consultations.Consultation, error) {
	var (
		c     consultations.Consultation
		price sql.NullFloat64
	)
	if err := s.Scan(
		&c.ID, &c.TutorID, &c.PetID,
		&c.Kind, &c.Veterinarian, &c.Clinic, &c.ScheduledAt,
		&c.Diagnosis, &c.Treatment, &c.Notes, &price, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return consultations.Consultation{}, err
	}
	c.Price = fromNullFloat(price)
	return c, nil
}
