package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/ptr"
)

func TestNewConsultationEvent(t *testing.T) {
	organizer := EventOrganizer{
		Name:     "NovaCoreVectra Consulting",
		Email:    "consultations@novacorevectra.net",
		Location: "Video call (link in invitation)",
	}

	c := &Consultation{
		ID:              1,
		FirstName:       "John",
		LastName:        "Doe",
		Email:           "john.doe@acme.com",
		Company:         "Acme Inc",
		JobTitle:        ptr.Ptr("CTO"),
		Message:         ptr.Ptr("Looking for a data platform review"),
		ScheduledDate:   monday,
		StartTime:       "14:00",
		DurationMinutes: 60,
		Status:          StatusConfirmed,
	}

	event := NewConsultationEvent(c, "uid-123", organizer, time.UTC)

	assert.Equal(t, "uid-123", event.UID)
	assert.Equal(t, "Strategy consultation with John Doe (Acme Inc)", event.Summary)
	assert.Equal(t, organizer.Location, event.Location)
	assert.Equal(t, organizer.Name, event.OrganizerName)
	assert.Equal(t, organizer.Email, event.OrganizerEmail)
	assert.Equal(t, "John Doe", event.AttendeeName)
	assert.Equal(t, "john.doe@acme.com", event.AttendeeEmail)

	require.Equal(t, time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC), event.Start)
	require.Equal(t, time.Date(2025, 6, 16, 15, 0, 0, 0, time.UTC), event.End)
	assert.Equal(t, time.Hour, event.Duration())
}

func TestNewConsultationEvent_Description(t *testing.T) {
	c := &Consultation{
		FirstName:       "Jane",
		LastName:        "Roe",
		Email:           "jane@corp.io",
		Company:         "Corp",
		Industry:        ptr.Ptr("Fintech"),
		ScheduledDate:   monday,
		StartTime:       "09:30",
		DurationMinutes: 60,
	}

	event := NewConsultationEvent(c, "uid-456", EventOrganizer{Email: "host@corp.io"}, time.UTC)

	assert.Contains(t, event.Description, "Name: Jane Roe")
	assert.Contains(t, event.Description, "Company: Corp")
	assert.Contains(t, event.Description, "Industry: Fintech")
	assert.Contains(t, event.Description, "Agenda:")

	// Пустые опциональные поля не попадают в описание
	assert.NotContains(t, event.Description, "Job Title:")
	assert.NotContains(t, event.Description, "Message:")
}
