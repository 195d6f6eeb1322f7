package events

import (
	"fmt"
	"io"
	"strings"
	"time"

	"event-scheduler/internal/domain/profiles"

	"github.com/emersion/go-ical"
)

const icalProductID = "-//event-scheduler//EN"

// WriteICS serializa el evento como un VCALENDAR con un único VEVENT.
// Los miembros sin email no se pueden expresar como ATTENDEE; quedan en la descripción.
func WriteICS(w io.Writer, e Event, members []profiles.Profile, stamp time.Time) error {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, e.ID+"@event-scheduler")
	ve.Props.SetText(ical.PropSummary, summaryFor(members))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, e.Start.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, e.End.UTC())
	ve.Props.SetText(ical.PropDescription, descriptionFor(e, members))

	for _, m := range members {
		if m.Email == "" {
			continue
		}
		p := ical.NewProp(ical.PropAttendee)
		p.Value = "mailto:" + m.Email
		p.Params.Set(ical.ParamCommonName, m.Name)
		ve.Props.Add(p)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icalProductID)
	cal.Children = append(cal.Children, ve)

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode ics: %w", err)
	}
	return nil
}

func summaryFor(members []profiles.Profile) string {
	if len(members) == 0 {
		return "Event"
	}
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return "Event with " + strings.Join(names, namesSeparator)
}

func descriptionFor(e Event, members []profiles.Profile) string {
	var sb strings.Builder
	sb.WriteString("Timezone: " + e.Timezone)
	for _, m := range members {
		sb.WriteString("\nParticipant: " + m.Name)
	}
	return sb.String()
}
