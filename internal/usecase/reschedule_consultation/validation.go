package reschedule_consultation

import (
	"fmt"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/calendarservice"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ConsultationID <= 0 {
		return fmt.Errorf("%w: consultationID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что новая дата подходит для консультации
func validateDate(date time.Time, now time.Time, policy domain.SchedulePolicy) error {
	if domain.DateInPast(date, now) {
		return ErrInvalidDate
	}

	// Консультации проводятся только по рабочим дням
	if !domain.IsBusinessDay(date) {
		return ErrNotBusinessDay
	}

	if !policy.HasAdvanceBookingLimit() {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, policy.AdvanceBookingDays)

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.AdvanceBookingDays)
	}

	return nil
}

// validateStartTime проверяет, что время начала попадает в рабочие часы
// и совпадает с сеткой слотов
func validateStartTime(startTime types.TimeString, policy domain.SchedulePolicy) error {
	if !domain.IsWithinBusinessHours(startTime) {
		return fmt.Errorf("%w: time %s is outside business hours", ErrInvalidTimeSlot, startTime)
	}

	if !policy.ContainsSlot(startTime) {
		return fmt.Errorf("%w: time %s is not on the slot grid", ErrInvalidTimeSlot, startTime)
	}

	return nil
}

// validateBookingNotice проверяет, что перенос не нарушает minBookingNoticeMinutes
func validateBookingNotice(
	date time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	if !domain.SameDay(date, now) {
		return nil
	}

	currentTime := types.NewTimeString(now)
	minAllowedTime, err := currentTime.AddMinutes(minBookingNoticeMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to calculate min allowed time: %v", ErrInternal, err)
	}

	if startTime.IsBefore(minAllowedTime) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// countSlotConflicts подсчитывает пересечения нового интервала с активными
// консультациями (кроме переносимой) и занятыми интервалами календаря
// Пересечение строгое: соприкосновение границ не считается
func countSlotConflicts(
	startTime types.TimeString,
	durationMinutes int,
	excludeID int64,
	consultations []*domain.Consultation,
	busy []calendarservice.BusyInterval,
) (int, error) {
	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return 0, err
	}

	count := 0

	for _, c := range consultations {
		// Переносимая консультация не блокирует собственный слот
		if c.ID == excludeID {
			continue
		}
		if !c.IsActive() {
			continue
		}

		cStart := c.StartTime
		cEnd, err := c.StartTime.AddMinutes(c.DurationMinutes)
		if err != nil {
			continue
		}

		if cStart.IsBefore(slotEnd) && cEnd.IsAfter(startTime) {
			count++
		}
	}

	for _, interval := range busy {
		if interval.Start.IsBefore(slotEnd) && interval.End.IsAfter(startTime) {
			count++
		}
	}

	return count, nil
}
