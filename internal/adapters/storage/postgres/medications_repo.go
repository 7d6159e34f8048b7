package postgres

import (
	"context"
	"database/sql"
	"errors"

	"petcheck/internal/domain/medications"
)

type MedicationsRepo struct {
	db *sql.DB
}

func NewMedicationsRepo(db *sql.DB) *MedicationsRepo {
	return &MedicationsRepo{db: db}
}

const medicationColumns = `
	id, tutor_id, pet_id,
	name, dosage, frequency, starts_at, ends_on,
	notes, active,
	created_at, updated_at`

func (r *MedicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO medications (`+medicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		m.ID, m.TutorID, m.PetID,
		m.Name, m.Dosage, m.Frequency, m.StartsAt, toNullTime(m.EndsOn),
		m.Notes, m.Active,
		m.CreatedAt, m.UpdatedAt,
	)
	return err
}

func (r *MedicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medications
		SET
			name = $3,
			dosage = $4,
			frequency = $5,
			starts_at = $6,
			ends_on = $7,
			notes = $8,
			active = $9,
			updated_at = $10
		WHERE id = $1 AND tutor_id = $2
	`,
		m.ID, m.TutorID,
		m.Name, m.Dosage, m.Frequency, m.StartsAt, toNullTime(m.EndsOn),
		m.Notes, m.Active,
		m.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, medications.ErrNotFound)
}

func (r *MedicationsRepo) GetByID(ctx context.Context, tutorID, id string) (medications.Medication, error) {
	if !validID(id) {
		return medications.Medication{}, medications.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications
		WHERE id = $1 AND tutor_id = $2
	`, id, tutorID)

	m, err := scanMedication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return medications.Medication{}, medications.ErrNotFound
	}
	return m, err
}

func (r *MedicationsRepo) List(ctx context.Context, tutorID, petID string) ([]medications.Medication, error) {
	if petID != "" && !validID(petID) {
		return []medications.Medication{}, nil
	}

	// pet_id vacío => NULL => sin filtro.
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+medicationColumns+`
		FROM medications
		WHERE tutor_id = $1 AND ($2::uuid IS NULL OR pet_id = $2::uuid)
		ORDER BY starts_at DESC
	`, tutorID, sql.NullString{String: petID, Valid: petID != ""})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medications.Medication, 0)
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MedicationsRepo) Delete(ctx context.Context, tutorID, id string) error {
	if !validID(id) {
		return medications.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM medications WHERE id = $1 AND tutor_id = $2`, id, tutorID)
	if err != nil {
		return err
	}
	return rowsAffected(res, medications.ErrNotFound)
}

func scanMedication(s scanner) (medications.Medication, error) {
	var (
		m   medications.Medication
		end sql.NullTime
	)
	if err := s.Scan(
		&m.ID, &m.TutorID, &m.PetID,
		&m.Name, &m.Dosage, &m.Frequency, &m.StartsAt, &end,
		&m.Notes, &m.Active,
		&m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return medications.Medication{}, err
	}
	m.EndsOn = fromNullTime(end)
	return m, nil
}
