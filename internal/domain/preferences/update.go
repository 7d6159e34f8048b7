package preferences

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OptionalBool: Touched = la clave vino en el request (aunque sea null).
type OptionalBool struct {
	Touched bool
	Value   *bool
}

// OptionalMinutes: Value nil = null o ausente. Valores no numéricos llegan
// como NaN y los rechaza el validador solo si el aviso queda habilitado.
type OptionalMinutes struct {
	Touched bool
	Value   *float64
}

// OptionalLabel: Touched con Value nil (null o tipo no-string) es un horario inválido.
type OptionalLabel struct {
	Touched bool
	Value   *string
}

// AdvanceUpdate es el cambio pedido para uno de los avisos con antecedencia.
type AdvanceUpdate struct {
	Enabled OptionalBool
	Minutes OptionalMinutes
}

// Update es la forma interna única del POST de preferencias, sin importar
// si el cliente mandó el payload plano o anidado.
type Update struct {
	Label    OptionalLabel
	Consult  AdvanceUpdate
	Reminder AdvanceUpdate
}

// DecodeUpdate normaliza ambos shapes aceptados:
//
//	{ "label": "08:30", "consulta_adv_enabled": true, "consulta_adv_minutes": 60, ... }
//	{ "label": "08:30", "consulta": { "enabled": true, "minutes": 60 }, "lembrete": {...} }
//
// Por campo gana la clave plana no-null, después la anidada no-null.
func DecodeUpdate(body []byte) (Update, error) {
	var up Update

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return up, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Update{}, fmt.Errorf("%w: body must be a json object", ErrInvalidPayload)
	}

	if v, ok := raw["label"]; ok {
		up.Label.Touched = true
		var s string
		if err := json.Unmarshal(v, &s); err == nil && !isNull(v) {
			up.Label.Value = &s
		}
	}

	var err error
	if up.Consult, err = decodeAdvance(raw, ConcernConsult, "consulta_adv_enabled", "consulta_adv_minutes"); err != nil {
		return Update{}, err
	}
	if up.Reminder, err = decodeAdvance(raw, ConcernReminder, "lembrete_adv_enabled", "lembrete_adv_minutes"); err != nil {
		return Update{}, err
	}

	return up, nil
}

func decodeAdvance(raw map[string]json.RawMessage, c Concern, enabledKey, minutesKey string) (AdvanceUpdate, error) {
	flatEnabled, err := decodeBool(raw, enabledKey, enabledKey)
	if err != nil {
		return AdvanceUpdate{}, err
	}
	flatMinutes := decodeMinutes(raw, minutesKey)

	var nestedEnabled OptionalBool
	var nestedMinutes OptionalMinutes
	if v, ok := raw[string(c)]; ok && !isNull(v) {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(v, &nested); err != nil {
			return AdvanceUpdate{}, fmt.Errorf("%w: %s must be an object", ErrInvalidPayload, c)
		}
		if nestedEnabled, err = decodeBool(nested, "enabled", string(c)+".enabled"); err != nil {
			return AdvanceUpdate{}, err
		}
		nestedMinutes = decodeMinutes(nested, "minutes")
	}

	out := AdvanceUpdate{
		Enabled: OptionalBool{
			Touched: flatEnabled.Touched || nestedEnabled.Touched,
			Value:   flatEnabled.Value,
		},
		Minutes: OptionalMinutes{
			Touched: flatMinutes.Touched || nestedMinutes.Touched,
			Value:   flatMinutes.Value,
		},
	}
	if out.Enabled.Value == nil {
		out.Enabled.Value = nestedEnabled.Value
	}
	if out.Minutes.Value == nil {
		out.Minutes.Value = nestedMinutes.Value
	}
	return out, nil
}

// decodeBool lee raw[key]; name es el nombre que se reporta en el error.
func decodeBool(raw map[string]json.RawMessage, key, name string) (OptionalBool, error) {
	v, ok := raw[key]
	if !ok {
		return OptionalBool{}, nil
	}
	if isNull(v) {
		return OptionalBool{Touched: true}, nil
	}
	var b bool
	if err := json.Unmarshal(v, &b); err != nil {
		return OptionalBool{}, fmt.Errorf("%w: %s must be a boolean", ErrInvalidPayload, name)
	}
	return OptionalBool{Touched: true, Value: &b}, nil
}

func decodeMinutes(raw map[string]json.RawMessage, key string) OptionalMinutes {
	v, ok := raw[key]
	if !ok {
		return OptionalMinutes{}
	}
	if isNull(v) {
		return OptionalMinutes{Touched: true}
	}

	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return OptionalMinutes{Touched: true, Value: &n}
	}

	// "60" también vale; cualquier otra cosa queda como NaN.
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return OptionalMinutes{Touched: true, Value: &f}
		}
	}
	nan := math.NaN()
	return OptionalMinutes{Touched: true, Value: &nan}
}

func isNull(v json.RawMessage) bool {
	return string(bytes.TrimSpace(v)) == "null"
}
