package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// 2025-06-16 is a Monday.
var monday = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func TestIsBusinessDay(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{name: "monday", day: monday, want: true},
		{name: "friday", day: monday.AddDate(0, 0, 4), want: true},
		{name: "saturday", day: monday.AddDate(0, 0, 5), want: false},
		{name: "sunday", day: monday.AddDate(0, 0, 6), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBusinessDay(tt.day))
		})
	}
}

func TestNextBusinessDay(t *testing.T) {
	friday := monday.AddDate(0, 0, 4)
	saturday := monday.AddDate(0, 0, 5)
	sunday := monday.AddDate(0, 0, 6)
	nextMonday := monday.AddDate(0, 0, 7)

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{name: "monday to tuesday", from: monday, want: monday.AddDate(0, 0, 1)},
		{name: "friday skips weekend", from: friday, want: nextMonday},
		{name: "saturday to monday", from: saturday, want: nextMonday},
		{name: "sunday to monday", from: sunday, want: nextMonday},
		{name: "time of day is dropped", from: friday.Add(18 * time.Hour), want: nextMonday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBusinessDay(tt.from))
		})
	}
}

func TestNearestBusinessDay(t *testing.T) {
	saturday := monday.AddDate(0, 0, 5)
	nextMonday := monday.AddDate(0, 0, 7)

	assert.Equal(t, monday, NearestBusinessDay(monday))
	assert.Equal(t, nextMonday, NearestBusinessDay(saturday))
}

func TestBusinessDaysBetween(t *testing.T) {
	sunday := monday.AddDate(0, 0, -1)
	nextSunday := monday.AddDate(0, 0, 6)

	days := BusinessDaysBetween(sunday, nextSunday)

	assert.Len(t, days, 5)
	assert.Equal(t, monday, days[0])
	assert.Equal(t, monday.AddDate(0, 0, 4), days[4])

	assert.Empty(t, BusinessDaysBetween(nextSunday, sunday))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(monday.Add(9*time.Hour), monday.Add(17*time.Hour)))
	assert.False(t, SameDay(monday, monday.AddDate(0, 0, 1)))
}

func TestDateInPast(t *testing.T) {
	now := monday.Add(12 * time.Hour)

	assert.True(t, DateInPast(monday.AddDate(0, 0, -1), now))
	assert.False(t, DateInPast(monday, now), "same calendar day is not in the past")
	assert.False(t, DateInPast(monday.AddDate(0, 0, 1), now))
}
