package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"petcheck/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, tutor_id,
	name, species, breed, sex, color,
	birth_date, weight_kg, neutered, photo_url, notes,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		p.ID,
		p.TutorID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		p.Color,
		toNullTime(p.BirthDate),
		toNullFloat(p.WeightKg),
		p.Neutered,
		p.PhotoURL,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $3,
			species = $4,
			breed = $5,
			sex = $6,
			color = $7,
			birth_date = $8,
			weight_kg = $9,
			neutered = $10,
			photo_url = $11,
			notes = $12,
			updated_at = $13
		WHERE id = $1 AND tutor_id = $2
	`,
		p.ID,
		p.TutorID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		p.Color,
		toNullTime(p.BirthDate),
		toNullFloat(p.WeightKg),
		p.Neutered,
		p.PhotoURL,
		p.Notes,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return rowsAffected(res, pets.ErrNotFound)
}

func (r *PetsRepo) GetByID(ctx context.Context, tutorID, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if !validID(id) {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1 AND tutor_id = $2
	`, id, tutorID)

	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) ListByTutor(ctx context.Context, tutorID string) ([]pets.Pet, error) {
	tutorID = strings.TrimSpace(tutorID)
	if tutorID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE tutor_id = $1
		ORDER BY created_at ASC
	`, tutorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete: consultations/vaccines/medications caen por cascade; reminders
// quedan con pet_id null.
func (r *PetsRepo) Delete(ctx context.Context, tutorID, id string) error {
	if !validID(id) {
		return pets.ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1 AND tutor_id = $2`, id, tutorID)
	if err != nil {
		return err
	}
	return rowsAffected(res, pets.ErrNotFound)
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p      pets.Pet
		bd     sql.NullTime
		weight sql.NullFloat64
	)
	if err := s.Scan(
		&p.ID,
		&p.TutorID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Sex,
		&p.Color,
		&bd,
		&weight,
		&p.Neutered,
		&p.PhotoURL,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	// birth_date es DATE; pgx lo trae como medianoche UTC.
	p.BirthDate = fromNullTime(bd)
	p.WeightKg = fromNullFloat(weight)
	return p, nil
}
