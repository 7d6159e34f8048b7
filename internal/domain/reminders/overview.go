package reminders

import (
	"sort"
	"time"
)

type Overview struct {
	Overdue  []Reminder
	Today    []Reminder
	Tomorrow []Reminder
	ThisWeek []Reminder
	Later    []Reminder
}

// BuildOverview clasifica por día calendario en la zona de now. La semana
// termina el sábado (empieza en domingo).
func BuildOverview(items []Reminder, now time.Time) Overview {
	sorted := make([]Reminder, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].DueAt.Before(sorted[j].DueAt) })

	startToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startTomorrow := startToday.AddDate(0, 0, 1)
	startAfter := startToday.AddDate(0, 0, 2)
	endOfWeek := startToday.AddDate(0, 0, 7-int(now.Weekday()))

	ov := Overview{
		Overdue:  []Reminder{},
		Today:    []Reminder{},
		Tomorrow: []Reminder{},
		ThisWeek: []Reminder{},
		Later:    []Reminder{},
	}
	for _, r := range sorted {
		due := r.DueAt.In(now.Location())
		switch {
		case r.Status == StatusDone:
			continue
		case due.Before(startToday):
			ov.Overdue = append(ov.Overdue, r)
		case due.Before(startTomorrow):
			ov.Today = append(ov.Today, r)
		case due.Before(startAfter):
			ov.Tomorrow = append(ov.Tomorrow, r)
		case due.Before(endOfWeek):
			ov.ThisWeek = append(ov.ThisWeek, r)
		default:
			ov.Later = append(ov.Later, r)
		}
	}
	return ov
}
