package medications

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
	StatusPaused   Status = "paused"
)

type Medication struct {
	ID        string
	TutorID   string
	PetID     string
	Name      string
	Dosage    string
	Frequency string
	StartsAt  time.Time
	EndsOn    *time.Time
	Notes     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StatusAt: inactivo => paused; fecha de término pasada => finished.
func (m Medication) StatusAt(now time.Time) Status {
	if !m.Active {
		return StatusPaused
	}
	if m.EndsOn != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		end := time.Date(m.EndsOn.Year(), m.EndsOn.Month(), m.EndsOn.Day(), 0, 0, 0, 0, time.UTC)
		if end.Before(today) {
			return StatusFinished
		}
	}
	return StatusActive
}
