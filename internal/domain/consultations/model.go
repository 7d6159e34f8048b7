package consultations

import "time"

type Kind string

const (
	KindRoutine     Kind = "rotina"
	KindVaccination Kind = "vacinacao"
	KindSurgery     Kind = "cirurgia"
	KindCheckUp     Kind = "check-up"
	KindEmergency   Kind = "emergencia"
	KindOther       Kind = "outro"
)

func (k Kind) Valid() bool {
	switch k {
	case KindRoutine, KindVaccination, KindSurgery, KindCheckUp, KindEmergency, KindOther:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusScheduled Status = "agendada"
	StatusDone      Status = "realizada"
	StatusCanceled  Status = "cancelada"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusDone, StatusCanceled:
		return true
	default:
		return false
	}
}

type Consultation struct {
	ID           string
	TutorID      string
	PetID        string
	Kind         Kind
	Veterinarian string
	Clinic       string
	ScheduledAt  time.Time
	Diagnosis    string
	Treatment    string
	Notes        string
	Price        *float64
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
