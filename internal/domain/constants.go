package domain

// Default scheduling configuration values
const (
	DefaultSlotStepMinutes        = 30
	DefaultMeetingDurationMinutes = 60
	DefaultMaxConcurrentMeetings  = 1
	DefaultAdvanceBookingDays     = 30
	DefaultMinBookingNoticeMinutes = 120
)

// Business hours boundaries: a consultation may only start
// at an hour h with BusinessDayStartHour <= h < BusinessDayEndHour
const (
	BusinessDayStartHour = 9
	BusinessDayEndHour   = 17
)

// Default slot windows (inclusive first/last slot start times)
const (
	DefaultMorningFirstSlot   = "09:00"
	DefaultMorningLastSlot    = "11:30"
	DefaultAfternoonFirstSlot = "14:00"
	DefaultAfternoonLastSlot  = "16:30"
)

// DefaultStartTime is used when a request carries no preferred time
const DefaultStartTime = "14:00"

// Business validation constants
const (
	MaxNameLength               = 100
	MaxCompanyLength            = 200
	MaxMessageLength            = 4000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных консультаций
// Используется при подсчёте занятости слотов
var InactiveStatuses = []ConsultationStatus{
	StatusCancelledByClient,
	StatusCancelledByStaff,
	StatusNoShow,
}

// ActiveStatuses список статусов активных консультаций
var ActiveStatuses = []ConsultationStatus{
	StatusPendingConfirmation,
	StatusConfirmed,
	StatusCompleted,
}
