package domain

import (
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// SlotWindow describes a contiguous run of bookable slot start times.
// FirstSlot and LastSlot are both inclusive.
type SlotWindow struct {
	FirstSlot types.TimeString
	LastSlot  types.TimeString
}

// SchedulePolicy describes when consultations may be booked.
// The zero value is not usable; construct with DefaultSchedulePolicy
// or from configuration.
type SchedulePolicy struct {
	Windows                 []SlotWindow
	SlotStepMinutes         int
	MeetingDurationMinutes  int
	MaxConcurrentMeetings   int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	DefaultStartTime        types.TimeString
	Location                *time.Location
}

// DefaultSchedulePolicy returns the standard policy: two windows of
// half-hour slots (09:00-11:30 and 14:00-16:30), one-hour meetings,
// one meeting at a time.
func DefaultSchedulePolicy() SchedulePolicy {
	return SchedulePolicy{
		Windows: []SlotWindow{
			{FirstSlot: DefaultMorningFirstSlot, LastSlot: DefaultMorningLastSlot},
			{FirstSlot: DefaultAfternoonFirstSlot, LastSlot: DefaultAfternoonLastSlot},
		},
		SlotStepMinutes:         DefaultSlotStepMinutes,
		MeetingDurationMinutes:  DefaultMeetingDurationMinutes,
		MaxConcurrentMeetings:   DefaultMaxConcurrentMeetings,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		DefaultStartTime:        DefaultStartTime,
		Location:                time.Local,
	}
}

// SlotsForDay returns the fixed slot catalog for the given date.
// The catalog is empty on weekends and never varies otherwise.
func (p SchedulePolicy) SlotsForDay(date time.Time) []types.TimeString {
	if !IsBusinessDay(date) {
		return []types.TimeString{}
	}

	slots := make([]types.TimeString, 0, 12)
	for _, window := range p.Windows {
		current := window.FirstSlot
		for !current.IsAfter(window.LastSlot) {
			slots = append(slots, current)

			next, err := current.AddMinutes(p.SlotStepMinutes)
			if err != nil {
				break
			}
			current = next
		}
	}
	return slots
}

// ContainsSlot reports whether t is one of the catalog slot start times.
func (p SchedulePolicy) ContainsSlot(t types.TimeString) bool {
	for _, window := range p.Windows {
		if t.IsBefore(window.FirstSlot) || t.IsAfter(window.LastSlot) {
			continue
		}

		current := window.FirstSlot
		for !current.IsAfter(window.LastSlot) {
			if current == t {
				return true
			}

			next, err := current.AddMinutes(p.SlotStepMinutes)
			if err != nil {
				break
			}
			current = next
		}
	}
	return false
}

// HasAdvanceBookingLimit returns true if there is a limit on how far
// in advance consultations can be booked
func (p SchedulePolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// IsWithinBusinessHours reports whether a start time falls inside
// business hours: hour in [BusinessDayStartHour, BusinessDayEndHour).
func IsWithinBusinessHours(t types.TimeString) bool {
	h := t.Hour()
	return h >= BusinessDayStartHour && h < BusinessDayEndHour
}
