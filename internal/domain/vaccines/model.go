package vaccines

import "time"

// UpcomingWindow: próxima dosis dentro de este plazo => "upcoming".
const UpcomingWindowDays = 30

type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusUpcoming Status = "upcoming"
	StatusUpToDate Status = "up_to_date"
)

type Vaccine struct {
	ID           string
	TutorID      string
	PetID        string
	Name         string
	AppliedOn    time.Time
	NextDoseOn   *time.Time
	Veterinarian string
	Clinic       string
	Batch        string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StatusAt clasifica por día: una dosis para hoy todavía no está vencida.
func (v Vaccine) StatusAt(now time.Time) Status {
	if v.NextDoseOn == nil {
		return StatusUpToDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(v.NextDoseOn.Year(), v.NextDoseOn.Month(), v.NextDoseOn.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case next.Before(today):
		return StatusOverdue
	case !next.After(today.AddDate(0, 0, UpcomingWindowDays)):
		return StatusUpcoming
	default:
		return StatusUpToDate
	}
}
