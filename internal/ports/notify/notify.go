package notify

import (
	"context"
	"time"
)

// ReminderRequest es el payload del servicio externo de notificaciones.
type ReminderRequest struct {
	TutorID        string    `json:"tutor_id"`
	Title          string    `json:"titulo"`
	DueAt          time.Time `json:"data_lembrete"`
	AdvanceEnabled bool      `json:"notificar_antecedencia"`
	AdvanceMinutes *int      `json:"minutos_antecedencia,omitempty"`
}

// Notifier crea la notificación remota de un lembrete.
type Notifier interface {
	CreateReminder(ctx context.Context, req ReminderRequest) error
}
