package preferences

import "math"

const (
	MinAdvanceMinutes  = 30
	MaxAdvanceMinutes  = 720
	AdvanceMinutesStep = 30
)

// IsValidAdvanceMinutes: nil es válido (aviso deshabilitado); si no, entero
// en [30, 720] y múltiplo de 30.
func IsValidAdvanceMinutes(v *float64) bool {
	if v == nil {
		return true
	}
	n := *v
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return false
	}
	return n >= MinAdvanceMinutes && n <= MaxAdvanceMinutes && int(n)%AdvanceMinutesStep == 0
}
