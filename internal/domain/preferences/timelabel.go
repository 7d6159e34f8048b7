package preferences

import (
	"fmt"
	"regexp"
	"strconv"
)

var labelRe = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// LabelToMinutes convierte "HH:MM" en minutos desde medianoche.
// Solo acepta horas 00-23 y minutos 00 o 30; cualquier otra cosa => ok=false.
func LabelToMinutes(label string) (int, bool) {
	m := labelRe.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	hh, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if hh < 0 || hh > 23 {
		return 0, false
	}
	if mm != 0 && mm != 30 {
		return 0, false
	}
	return hh*60 + mm, true
}

// MinutesToLabel es la inversa: nil => nil.
func MinutesToLabel(minutes *int) *string {
	if minutes == nil {
		return nil
	}
	s := fmt.Sprintf("%02d:%02d", *minutes/60, *minutes%60)
	return &s
}
