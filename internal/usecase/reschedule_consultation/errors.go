package reschedule_consultation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_consultation: invalid input data")

	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = errors.New("reschedule_consultation: consultation not found")

	// ErrCannotReschedule возвращается, когда консультацию нельзя перенести
	ErrCannotReschedule = errors.New("reschedule_consultation: consultation cannot be rescheduled")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("reschedule_consultation: invalid consultation date")

	// ErrNotBusinessDay возвращается, когда новая дата выпадает на выходной
	ErrNotBusinessDay = errors.New("reschedule_consultation: date is not a business day")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("reschedule_consultation: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время вне рабочих часов или не совпадает с сеткой слотов
	ErrInvalidTimeSlot = errors.New("reschedule_consultation: invalid time slot")

	// ErrTooLateToBook возвращается, когда перенос нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("reschedule_consultation: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда новый слот занят
	ErrSlotNotAvailable = errors.New("reschedule_consultation: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_consultation: internal error")
)
