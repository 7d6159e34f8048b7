package reminders

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

const calendarProdID = "-//petcheck//reminders//PT"

// defaultEventLength: los lembretes son puntuales; el VEVENT dura 30 min.
const defaultEventLength = 30 * time.Minute

var recurrenceFreq = map[Recurrence]rrule.Frequency{
	RecurrenceDaily:   rrule.DAILY,
	RecurrenceWeekly:  rrule.WEEKLY,
	RecurrenceMonthly: rrule.MONTHLY,
	RecurrenceYearly:  rrule.YEARLY,
}

// Calendar arma un VCALENDAR con un VEVENT por lembrete.
func Calendar(items []Reminder, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, calendarProdID)
	cal.Props.SetText("X-WR-CALNAME", "PetCheck")

	for _, r := range items {
		cal.Children = append(cal.Children, reminderEvent(r, stamp).Component)
	}
	return cal
}

func reminderEvent(r Reminder, stamp time.Time) *ical.Event {
	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, r.ID+"@petcheck")
	ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ev.Props.SetDateTime(ical.PropDateTimeStart, r.DueAt.UTC())
	ev.Props.SetDateTime(ical.PropDateTimeEnd, r.DueAt.Add(defaultEventLength).UTC())
	ev.Props.SetText(ical.PropSummary, r.Title)
	if r.Description != "" {
		ev.Props.SetText(ical.PropDescription, r.Description)
	}
	ev.Props.SetText(ical.PropCategories, string(r.Kind))

	if freq, ok := recurrenceFreq[r.Recurrence]; ok {
		ev.Props.SetRecurrenceRule(&rrule.ROption{Freq: freq})
	}

	if r.AdvanceEnabled && r.AdvanceMinutes != nil {
		ev.Children = append(ev.Children, advanceAlarm(r.Title, *r.AdvanceMinutes))
	}
	return ev
}

func advanceAlarm(title string, minutes int) *ical.Component {
	alarm := ical.NewComponent(ical.CompAlarm)
	alarm.Props.SetText(ical.PropAction, "DISPLAY")
	alarm.Props.SetText(ical.PropDescription, title)

	// TRIGGER es de tipo DURATION; se arma a mano para no forzar VALUE=TEXT.
	trigger := ical.NewProp(ical.PropTrigger)
	trigger.Value = fmt.Sprintf("-PT%dM", minutes)
	alarm.Props.Set(trigger)
	return alarm
}

// WriteCalendar serializa en text/calendar.
func WriteCalendar(w io.Writer, items []Reminder, stamp time.Time) error {
	return ical.NewEncoder(w).Encode(Calendar(items, stamp))
}
