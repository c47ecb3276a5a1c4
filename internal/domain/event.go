package domain

import (
	"strings"
	"time"
)

// eventAgenda фиксированный текст повестки, добавляемый в описание встречи
const eventAgenda = `Agenda:
- Introductions and project goals
- Current challenges and priorities
- Recommended engagement approach
- Next steps`

// EventOrganizer identifies who hosts consultation meetings.
// Comes from service configuration.
type EventOrganizer struct {
	Name     string
	Email    string
	Location string // meeting location, e.g. a video call link
}

// CalendarEvent is the projection of a consultation into a meeting
// invitation. Computed once and never mutated afterwards.
type CalendarEvent struct {
	UID         string
	Summary     string
	Description string
	Location    string

	Start time.Time
	End   time.Time

	OrganizerName  string
	OrganizerEmail string
	AttendeeName   string
	AttendeeEmail  string
}

// Duration returns the meeting length
func (e *CalendarEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NewConsultationEvent builds the calendar event for a consultation.
// The event starts at the consultation's scheduled date and time in
// loc; the end time is exactly DurationMinutes later.
func NewConsultationEvent(c *Consultation, uid string, organizer EventOrganizer, loc *time.Location) CalendarEvent {
	date := c.ScheduledDate.In(loc)
	start := c.StartTime.At(time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc))
	end := start.Add(time.Duration(c.DurationMinutes) * time.Minute)

	return CalendarEvent{
		UID:            uid,
		Summary:        "Strategy consultation with " + c.ClientFullName() + " (" + c.Company + ")",
		Description:    buildEventDescription(c),
		Location:       organizer.Location,
		Start:          start,
		End:            end,
		OrganizerName:  organizer.Name,
		OrganizerEmail: organizer.Email,
		AttendeeName:   c.ClientFullName(),
		AttendeeEmail:  c.Email,
	}
}

// buildEventDescription собирает текстовое описание встречи:
// подписанные поля заявки и фиксированная повестка
func buildEventDescription(c *Consultation) string {
	var b strings.Builder

	b.WriteString("Name: " + c.ClientFullName() + "\n")
	b.WriteString("Company: " + c.Company + "\n")
	b.WriteString("Email: " + c.Email + "\n")

	if c.JobTitle != nil && *c.JobTitle != "" {
		b.WriteString("Job Title: " + *c.JobTitle + "\n")
	}
	if c.Industry != nil && *c.Industry != "" {
		b.WriteString("Industry: " + *c.Industry + "\n")
	}
	if c.ProjectType != nil && *c.ProjectType != "" {
		b.WriteString("Project Type: " + *c.ProjectType + "\n")
	}
	if c.Message != nil && *c.Message != "" {
		b.WriteString("Message: " + *c.Message + "\n")
	}

	b.WriteString("\n")
	b.WriteString(eventAgenda)

	return b.String()
}
