package get_available_slots

import (
	"fmt"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата подходит для запроса слотов
func validateDate(requestDate time.Time, now time.Time, policy domain.SchedulePolicy) error {
	// Проверяем, что дата не в прошлом
	if domain.DateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// Если лимита нет, дата может быть сколь угодно далеко
	if !policy.HasAdvanceBookingLimit() {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, policy.AdvanceBookingDays)

	requestDateOnly := time.Date(requestDate.Year(), requestDate.Month(), requestDate.Day(), 0, 0, 0, 0, requestDate.Location())

	if requestDateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.AdvanceBookingDays)
	}

	return nil
}
