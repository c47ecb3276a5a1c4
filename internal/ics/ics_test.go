package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
)

func validEvent() domain.CalendarEvent {
	return domain.CalendarEvent{
		UID:            "f1c2a3d4-0000-0000-0000-000000000001",
		Summary:        "Strategy consultation with John Doe (Acme Inc)",
		Description:    "Name: John Doe\nCompany: Acme Inc",
		Location:       "Video call",
		Start:          time.Date(2025, 6, 16, 14, 0, 0, 0, time.UTC),
		End:            time.Date(2025, 6, 16, 15, 0, 0, 0, time.UTC),
		OrganizerName:  "NovaCoreVectra Consulting",
		OrganizerEmail: "consultations@novacorevectra.net",
		AttendeeName:   "John Doe",
		AttendeeEmail:  "john.doe@acme.com",
	}
}

func TestEncode(t *testing.T) {
	event := validEvent()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	payload, err := Encode(&event, now)
	require.NoError(t, err)

	assert.Contains(t, payload, "BEGIN:VCALENDAR")
	assert.Contains(t, payload, "END:VCALENDAR")
	assert.Contains(t, payload, "BEGIN:VEVENT")
	assert.Contains(t, payload, "METHOD:REQUEST")
	assert.Contains(t, payload, "UID:"+event.UID)
	assert.Contains(t, payload, "DTSTAMP:20250610T120000Z")
	assert.Contains(t, payload, "DTSTART:20250616T140000Z")
	assert.Contains(t, payload, "DTEND:20250616T150000Z")
	assert.Contains(t, payload, "STATUS:CONFIRMED")
	assert.Contains(t, payload, "mailto:consultations@novacorevectra.net")
	assert.Contains(t, payload, "mailto:john.doe@acme.com")
	assert.Contains(t, payload, "RSVP=TRUE")
}

func TestEncode_LocalTimeConvertedToUTC(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)

	event := validEvent()
	event.Start = time.Date(2025, 6, 16, 14, 0, 0, 0, loc)
	event.End = time.Date(2025, 6, 16, 15, 0, 0, 0, loc)

	payload, err := Encode(&event, time.Now())
	require.NoError(t, err)

	assert.Contains(t, payload, "DTSTART:20250616T120000Z")
	assert.Contains(t, payload, "DTEND:20250616T130000Z")
}

func TestEncode_Errors(t *testing.T) {
	t.Run("empty UID", func(t *testing.T) {
		event := validEvent()
		event.UID = ""

		_, err := Encode(&event, time.Now())
		require.Error(t, err)
	})

	t.Run("end not after start", func(t *testing.T) {
		event := validEvent()
		event.End = event.Start

		_, err := Encode(&event, time.Now())
		require.Error(t, err)
	})
}
