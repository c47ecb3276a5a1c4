// Package ics renders consultation calendar events as iCalendar
// (RFC 5545) invitation payloads.
package ics

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
)

// prodID identifies this service in generated calendars
const prodID = "-//NovaCoreVectra//NCV-ConsultationService//EN"

// Encode renders a single-event VCALENDAR invitation.
// Timestamps are written in UTC; now becomes the DTSTAMP value.
func Encode(event *domain.CalendarEvent, now time.Time) (string, error) {
	if event.UID == "" {
		return "", fmt.Errorf("ics: event UID is required")
	}
	if !event.End.After(event.Start) {
		return "", fmt.Errorf("ics: event end %s is not after start %s", event.End, event.Start)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropMethod, "REQUEST")

	ev := ical.NewEvent()
	ev.Props.SetText(ical.PropUID, event.UID)
	ev.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ev.Props.SetDateTime(ical.PropDateTimeStart, event.Start.UTC())
	ev.Props.SetDateTime(ical.PropDateTimeEnd, event.End.UTC())
	ev.Props.SetText(ical.PropSummary, event.Summary)
	ev.Props.SetText(ical.PropDescription, event.Description)
	ev.Props.SetText(ical.PropStatus, "CONFIRMED")

	if event.Location != "" {
		ev.Props.SetText(ical.PropLocation, event.Location)
	}

	organizer := ical.NewProp(ical.PropOrganizer)
	if event.OrganizerName != "" {
		organizer.Params.Set(ical.ParamCommonName, event.OrganizerName)
	}
	organizer.Value = "mailto:" + event.OrganizerEmail
	ev.Props.Set(organizer)

	attendee := ical.NewProp(ical.PropAttendee)
	if event.AttendeeName != "" {
		attendee.Params.Set(ical.ParamCommonName, event.AttendeeName)
	}
	attendee.Params.Set(ical.ParamRSVP, "TRUE")
	attendee.Value = "mailto:" + event.AttendeeEmail
	ev.Props.Set(attendee)

	cal.Children = append(cal.Children, ev.Component)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("ics: encode calendar: %w", err)
	}

	return buf.String(), nil
}
