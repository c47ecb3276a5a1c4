package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

func TestSchedulePolicy_SlotsForDay(t *testing.T) {
	policy := DefaultSchedulePolicy()

	t.Run("business day has full catalog", func(t *testing.T) {
		slots := policy.SlotsForDay(monday)

		require.Len(t, slots, 12)

		// Утреннее окно 09:00-11:30
		assert.Equal(t, types.TimeString("09:00"), slots[0])
		assert.Equal(t, types.TimeString("11:30"), slots[5])

		// Дневное окно 14:00-16:30
		assert.Equal(t, types.TimeString("14:00"), slots[6])
		assert.Equal(t, types.TimeString("16:30"), slots[11])
	})

	t.Run("weekend has no slots", func(t *testing.T) {
		saturday := monday.AddDate(0, 0, 5)
		assert.Empty(t, policy.SlotsForDay(saturday))
	})

	t.Run("catalog does not vary between business days", func(t *testing.T) {
		assert.Equal(t, policy.SlotsForDay(monday), policy.SlotsForDay(monday.AddDate(0, 0, 2)))
	})
}

func TestSchedulePolicy_ContainsSlot(t *testing.T) {
	policy := DefaultSchedulePolicy()

	tests := []struct {
		name string
		slot types.TimeString
		want bool
	}{
		{name: "first morning slot", slot: "09:00", want: true},
		{name: "last morning slot", slot: "11:30", want: true},
		{name: "first afternoon slot", slot: "14:00", want: true},
		{name: "last afternoon slot", slot: "16:30", want: true},
		{name: "lunch break", slot: "12:00", want: false},
		{name: "off-grid quarter hour", slot: "14:15", want: false},
		{name: "before opening", slot: "08:30", want: false},
		{name: "after last slot", slot: "17:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.ContainsSlot(tt.slot))
		})
	}
}

func TestSchedulePolicy_HasAdvanceBookingLimit(t *testing.T) {
	policy := DefaultSchedulePolicy()
	assert.True(t, policy.HasAdvanceBookingLimit())

	policy.AdvanceBookingDays = 0
	assert.False(t, policy.HasAdvanceBookingLimit())
}

func TestIsWithinBusinessHours(t *testing.T) {
	tests := []struct {
		slot types.TimeString
		want bool
	}{
		{slot: "09:00", want: true},
		{slot: "16:30", want: true},
		{slot: "16:59", want: true},
		{slot: "17:00", want: false},
		{slot: "08:59", want: false},
		{slot: "00:00", want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			assert.Equal(t, tt.want, IsWithinBusinessHours(tt.slot))
		})
	}
}

func TestSchedulePolicy_SlotsForDay_CustomWindow(t *testing.T) {
	policy := SchedulePolicy{
		Windows: []SlotWindow{
			{FirstSlot: "10:00", LastSlot: "12:00"},
		},
		SlotStepMinutes: 60,
		Location:        time.UTC,
	}

	slots := policy.SlotsForDay(monday)

	assert.Equal(t, []types.TimeString{"10:00", "11:00", "12:00"}, slots)
}
