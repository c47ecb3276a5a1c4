package book_consultation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/calendarservice"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}
	if len(req.FirstName) > domain.MaxNameLength {
		return fmt.Errorf("%w: firstName is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: lastName is required", ErrInvalidInput)
	}
	if len(req.LastName) > domain.MaxNameLength {
		return fmt.Errorf("%w: lastName is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Company) == "" {
		return fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	if len(req.Company) > domain.MaxCompanyLength {
		return fmt.Errorf("%w: company is too long", ErrInvalidInput)
	}

	if req.Message != nil && len(*req.Message) > domain.MaxMessageLength {
		return fmt.Errorf("%w: message is too long", ErrInvalidInput)
	}

	// Валидируем timezone, если указана
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
		}
	}

	// Валидируем формат времени, если указано
	if req.PreferredTime != nil {
		if err := req.PreferredTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid preferredTime format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// resolveSchedule определяет дату и время консультации
// Явно указанные предпочтения используются как есть, отсутствующие
// заменяются следующим рабочим днём и временем по умолчанию
func resolveSchedule(req *Request, now time.Time, policy domain.SchedulePolicy) (time.Time, types.TimeString) {
	date := domain.NextBusinessDay(now)
	if req.PreferredDate != nil {
		date = *req.PreferredDate
	}

	startTime := policy.DefaultStartTime
	if req.PreferredTime != nil {
		startTime = *req.PreferredTime
	}

	return date, startTime
}

// validateDate проверяет, что дата подходит для консультации
func validateDate(date time.Time, now time.Time, policy domain.SchedulePolicy) error {
	// Проверяем, что дата не в прошлом
	if domain.DateInPast(date, now) {
		return ErrInvalidDate
	}

	// Консультации проводятся только по рабочим дням
	if !domain.IsBusinessDay(date) {
		return ErrNotBusinessDay
	}

	// Если лимита нет, дата может быть сколь угодно далеко
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

// validateBookingNotice проверяет, что запись не нарушает minBookingNoticeMinutes
func validateBookingNotice(
	date time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
) error {
	// Если консультация не сегодня, проверка не нужна
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

// countSlotConflicts подсчитывает пересечения запрошенного интервала
// с активными консультациями и занятыми интервалами календаря
// Пересечение строгое: соприкосновение границ не считается
func countSlotConflicts(
	startTime types.TimeString,
	durationMinutes int,
	consultations []*domain.Consultation,
	busy []calendarservice.BusyInterval,
) (int, error) {
	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return 0, err
	}

	count := 0

	for _, c := range consultations {
		// Пропускаем неактивные консультации
		if !c.IsActive() {
			continue
		}

		cStart := c.StartTime
		cEnd, err := c.StartTime.AddMinutes(c.DurationMinutes)
		if err != nil {
			// Если не можем вычислить конец консультации, пропускаем
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
