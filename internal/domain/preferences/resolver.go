package preferences

import (
	"errors"
	"fmt"
)

// Resolution es la fila resuelta más las columnas que el update escribe.
type Resolution struct {
	Row     Preference
	Touched ColumnSet
	// Insert es true cuando no había fila previa (se persiste completa).
	Insert bool
}

// Resolve combina el estado previo (nil = no hay fila) con el update.
// Orden por campo: plano -> anidado (ya mezclados en Update) -> previo -> default.
// Cada aviso se valida por separado; si alguno falla no se persiste nada.
func Resolve(tutorID string, prev *Preference, up Update) (Resolution, error) {
	var base Preference
	if prev != nil {
		base = *prev
	}

	res := Resolution{
		Row:     Preference{TutorID: tutorID},
		Touched: ColumnSet{},
		Insert:  prev == nil,
	}

	var errs []error

	res.Row.NotifyMinutes = base.NotifyMinutes
	if up.Label.Touched {
		m, ok := 0, false
		if up.Label.Value != nil {
			m, ok = LabelToMinutes(*up.Label.Value)
		}
		if !ok {
			errs = append(errs, fmt.Errorf("%w: expected HH:MM with minutes 00 or 30", ErrInvalidTimeLabel))
		} else {
			res.Row.NotifyMinutes = &m
			res.Touched[ColNotifyMinutes] = true
		}
	}

	enabled, minutes, err := resolveAdvance(ConcernConsult, up.Consult, base.ConsultAdvanceEnabled, base.ConsultAdvanceMinutes)
	if err != nil {
		errs = append(errs, err)
	}
	res.Row.ConsultAdvanceEnabled = enabled
	res.Row.ConsultAdvanceMinutes = minutes
	markAdvance(res.Touched, up.Consult, enabled, prev != nil && base.ConsultAdvanceMinutes != nil,
		ColConsultAdvanceEnabled, ColConsultAdvanceMinutes)

	enabled, minutes, err = resolveAdvance(ConcernReminder, up.Reminder, base.ReminderAdvanceEnabled, base.ReminderAdvanceMinutes)
	if err != nil {
		errs = append(errs, err)
	}
	res.Row.ReminderAdvanceEnabled = enabled
	res.Row.ReminderAdvanceMinutes = minutes
	markAdvance(res.Touched, up.Reminder, enabled, prev != nil && base.ReminderAdvanceMinutes != nil,
		ColReminderAdvanceEnabled, ColReminderAdvanceMinutes)

	if len(errs) > 0 {
		return Resolution{}, errors.Join(errs...)
	}
	return res, nil
}

func resolveAdvance(c Concern, up AdvanceUpdate, prevEnabled bool, prevMinutes *int) (bool, *int, error) {
	enabled := prevEnabled
	if up.Enabled.Value != nil {
		enabled = *up.Enabled.Value
	}

	// Con el aviso deshabilitado los minutos quedan en null, venga lo que venga.
	if !enabled {
		return false, nil, nil
	}

	raw := up.Minutes.Value
	if raw == nil && prevMinutes != nil {
		f := float64(*prevMinutes)
		raw = &f
	}
	if !IsValidAdvanceMinutes(raw) {
		return enabled, nil, &FieldError{
			Concern: c,
			Err:     fmt.Errorf("%w: must be a multiple of %d between %d and %d", ErrInvalidAdvanceMinutes, AdvanceMinutesStep, MinAdvanceMinutes, MaxAdvanceMinutes),
		}
	}
	if raw == nil {
		return true, nil, nil
	}
	m := int(*raw)
	return true, &m, nil
}

// markAdvance decide qué columnas del aviso escribe el update parcial.
// Los minutos también se escriben cuando el aviso queda deshabilitado y la
// fila previa todavía tenía minutos (limpieza explícita).
func markAdvance(touched ColumnSet, up AdvanceUpdate, enabled, prevHadMinutes bool, enabledCol, minutesCol Column) {
	if up.Enabled.Touched {
		touched[enabledCol] = true
	}
	if up.Minutes.Touched || (!enabled && prevHadMinutes) {
		touched[minutesCol] = true
	}
}
