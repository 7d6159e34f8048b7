package reminders

import (
	"strings"
	"time"
)

type Kind string

const (
	KindConsultation Kind = "consultation"
	KindVaccine      Kind = "vaccine"
	KindMedication   Kind = "medication"
	KindFeeding      Kind = "feeding"
	KindOther        Kind = "other"
)

var kindAliases = map[string]Kind{
	"consulta":    KindConsultation,
	"vacina":      KindVaccine,
	"medicamento": KindMedication,
	"alimentacao": KindFeeding,
	"alimentação": KindFeeding,
	"outro":       KindOther,
}

// ParseKind acepta el valor canónico o el alias del formulario. Un texto libre
// se guarda tal cual y se trata como "other".
func ParseKind(s string) Kind {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindOther
	}
	if k, ok := kindAliases[s]; ok {
		return k
	}
	return Kind(s)
}

type Status string

const (
	StatusActive Status = "active"
	StatusDone   Status = "done"
)

func ParseStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "ativo":
		return StatusActive, true
	case "done", "concluido", "concluído":
		return StatusDone, true
	default:
		return "", false
	}
}

type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// ParseRecurrence: "" => none.
func ParseRecurrence(s string) (Recurrence, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "unica", "única":
		return RecurrenceNone, true
	case "daily", "diaria", "diária":
		return RecurrenceDaily, true
	case "weekly", "semanal":
		return RecurrenceWeekly, true
	case "monthly", "mensal":
		return RecurrenceMonthly, true
	case "yearly", "anual":
		return RecurrenceYearly, true
	default:
		return "", false
	}
}

// Source indica qué registro originó el lembrete.
type Source string

const (
	SourceManual     Source = "manual"
	SourceMedication Source = "medication"
	SourceVaccine    Source = "vaccine"
)

type Reminder struct {
	ID          string
	TutorID     string
	PetID       *string
	Title       string
	Description string
	DueAt       time.Time
	Kind        Kind
	Status      Status
	Recurrence  Recurrence

	// AdvanceMinutes sólo tiene valor si AdvanceEnabled.
	AdvanceEnabled bool
	AdvanceMinutes *int

	Source   Source
	SourceID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
