package preferences

import "time"

// Preference es la fila notification_preferences de un tutor (1:1).
// Invariante: *AdvanceMinutes != nil solo si el flag correspondiente es true.
type Preference struct {
	TutorID string

	NotifyMinutes *int

	ConsultAdvanceEnabled bool
	ConsultAdvanceMinutes *int

	ReminderAdvanceEnabled bool
	ReminderAdvanceMinutes *int

	UpdatedAt time.Time
}

// Column identifica una columna persistible de la preferencia.
type Column string

const (
	ColNotifyMinutes          Column = "notify_minutes"
	ColConsultAdvanceEnabled  Column = "consulta_adv_enabled"
	ColConsultAdvanceMinutes  Column = "consulta_adv_minutes"
	ColReminderAdvanceEnabled Column = "lembrete_adv_enabled"
	ColReminderAdvanceMinutes Column = "lembrete_adv_minutes"
)

// Columns es el orden estable de columnas (para armar SQL y tests).
var Columns = []Column{
	ColNotifyMinutes,
	ColConsultAdvanceEnabled,
	ColConsultAdvanceMinutes,
	ColReminderAdvanceEnabled,
	ColReminderAdvanceMinutes,
}

// ColumnSet es el conjunto de columnas que toca un update parcial.
type ColumnSet map[Column]bool

func (s ColumnSet) Has(c Column) bool { return s[c] }

// Sorted devuelve las columnas presentes en el orden de Columns.
func (s ColumnSet) Sorted() []Column {
	out := make([]Column, 0, len(s))
	for _, c := range Columns {
		if s[c] {
			out = append(out, c)
		}
	}
	return out
}

// Concern separa los dos avisos con antecedencia.
type Concern string

const (
	ConcernConsult  Concern = "consulta"
	ConcernReminder Concern = "lembrete"
)
