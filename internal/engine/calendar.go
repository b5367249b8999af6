package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-birthday-card/internal/config"
)

// SummaryFunc renders an event title. age is only meaningful when yearKnown.
type SummaryFunc func(name string, age int, yearKnown bool) string

// BuildCalendar renders the recipient's birthday as an iCalendar feed with one
// all-day event for the previous, current and next year. Years before the
// birth year are skipped. An unknown birthday yields an empty calendar.
func BuildCalendar(rec Recipient, now time.Time, reminderTrigger string, summary SummaryFunc) ([]byte, error) {
	if !rec.HasBirthday() {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Dates follow the local calendar; only the stamp is UTC.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, event := range birthdayEvents(rec, now, reminderTrigger, summary) {
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedGenerated,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyEvents, len(cal.Children),
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

func birthdayEvents(rec Recipient, now time.Time, reminderTrigger string, summary SummaryFunc) []*ical.Event {
	currentYear := now.Year()
	loc := now.Location()
	birth := rec.Birthday

	var events []*ical.Event
	for _, y := range []int{currentYear - 1, currentYear, currentYear + 1} {
		if rec.YearKnown && y < birth.Year() {
			continue
		}

		age := 0
		if rec.YearKnown {
			age = y - birth.Year()
		}

		title := fmt.Sprintf(config.FallbackSummary, rec.Name)
		if summary != nil {
			title = summary(rec.Name, age, rec.YearKnown)
		} else if rec.YearKnown && age > 0 {
			title = fmt.Sprintf(config.FallbackSummaryAge, rec.Name, age)
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(rec, y))
		event.Props.SetText(config.PropSummary, title)

		// time.Date rolls Feb 29 over to Mar 1 outside leap years.
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, birth.Month(), birth.Day(), 0, 0, 0, 0, loc))
		event.Props.Set(dtStartProp)

		if reminderTrigger != "" {
			addAlarm(event, reminderTrigger, title)
		}
		events = append(events, event)
	}
	return events
}

// eventUID is stable across regenerations so calendar clients update events
// in place instead of duplicating them.
func eventUID(rec Recipient, year int) string {
	input := fmt.Sprintf(config.FormatHashInput, rec.Name, rec.Birthday.Format(config.DateFormatFullDash), year, config.UIDSalt)
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(input))
	return fmt.Sprintf(config.FormatUID, id.String(), config.ICalDomain)
}

// addAlarm appends a DISPLAY alarm to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Raw value avoids a VALUE=TEXT parameter on the trigger.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}
