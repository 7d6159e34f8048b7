package pets

import "time"

// Species son las especies que ofrece el formulario.
type Species string

const (
	SpeciesDog   Species = "cão"
	SpeciesCat   Species = "gato"
	SpeciesBird  Species = "pássaro"
	SpeciesFish  Species = "peixe"
	SpeciesOther Species = "outro"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesBird, SpeciesFish, SpeciesOther:
		return true
	}
	return false
}

// Sex de la mascota. Vacío = no informado.
type Sex string

const (
	SexMale   Sex = "macho"
	SexFemale Sex = "fêmea"
)

func (s Sex) Valid() bool {
	return s == "" || s == SexMale || s == SexFemale
}

const (
	MaxAgeYears = 60
	MaxWeightKg = 1000
)

// Pet es el perfil de una mascota de un tutor.
type Pet struct {
	ID      string
	TutorID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex
	Color   string

	BirthDate *time.Time
	WeightKg  *float64
	Neutered  bool

	PhotoURL string
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}
