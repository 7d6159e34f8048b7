package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petcheck/internal/domain/vaccines"
)

type VaccinesRepo struct {
	db *sql.DB
}

func NewVaccinesRepo(db *sql.DB) *VaccinesRepo {
	return &VaccinesRepo{db: db}
}

const vaccineColumns = `
	id, tutor_id, pet_id,
	name, applied_on, next_dose_on,
	veterinarian, clinic, batch, notes,
	created_at, updated_at`

func (r *VaccinesRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vaccines (`+vaccineColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		v.ID, v.TutorID, v.PetID,
		v.Name, v.AppliedOn, toNullTime(v.NextDoseOn),
		v.Veterinarian, v.Clinic, v.Batch, v.Notes,
		v.CreatedAt, v.UpdatedAt,
	)
	return err
}

func (r *VaccinesRepo) Update(ctx context.Context, v vaccines.Vaccine) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vaccines
		SET
			name = $3,
			applied_on = $4,
			next_dose_on = $5,
			veterinarian = $6,
			clinic = $7,
			batch = $8,
			notes = $9,
			updated_at = $10
		WHERE id = $1 AND tutor_id = $2
	`,
		v.ID, v.TutorID,
		v.Name, v.AppliedOn, toNullTime(v.NextDoseOn),
		v.Veterinarian, v.Clinic, v.Batch, v.Notes,
		v.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, vaccines.ErrNotFound)
}

func (r *VaccinesRepo) GetByID(ctx context.Context, tutorID, id string) (vaccines.Vaccine, error) {
	if !validID(id) {
		return vaccines.Vaccine{}, vaccines.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+vaccineColumns+`
		FROM vaccines
		WHERE id = $1 AND tutor_id = $2
	`, id, tutorID)

	v, err := scanVaccine(row)
	if errors.Is(err, sql.ErrNoRows) {
		return vaccines.Vaccine{}, vaccines.ErrNotFound
	}
	return v, err
}

func (r *VaccinesRepo) List(ctx context.Context, tutorID, petID string) ([]vaccines.Vaccine, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if petID == "" {
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+vaccineColumns+`
			FROM vaccines
			WHERE tutor_id = $1
			ORDER BY applied_on DESC, created_at DESC
		`, tutorID)
	} else {
		if !validID(petID) {
			return []vaccines.Vaccine{}, nil
		}
		rows, err = r.db.QueryContext(ctx, `
			SELECT `+vaccineColumns+`
			FROM vaccines
			WHERE tutor_id = $1 AND pet_id = $2
			ORDER BY applied_on DESC, created_at DESC
		`, tutorID, petID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccines.Vaccine, 0)
	for rows.Next() {
		v, err := scanVaccine(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VaccinesRepo) Delete(ctx context.Context, tutorID, id string) error {
	if !validID(id) {
		return vaccines.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM vaccines WHERE id = $1 AND tutor_id = $2`, id, tutorID)
	if err != nil {
		return err
	}
	return rowsAffected(res, vaccines.ErrNotFound)
}

func scanVaccine(s scanner) (vaccines.Vaccine, error) {
	var (
		v    vaccines.Vaccine
		next sql.NullTime
	)
	if err := s.Scan(
		&v.ID, &v.TutorID, &v.PetID,
		&v.Name, &v.AppliedOn, &next,
		&v.Veterinarian, &v.Clinic, &v.Batch, &v.Notes,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return vaccines.Vaccine{}, err
	}
	v.NextDoseOn = fromNullTime(next)
	return v, nil
}
