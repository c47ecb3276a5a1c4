package book_consultation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_consultation: invalid input data")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("book_consultation: invalid consultation date")

	// ErrNotBusinessDay возвращается, когда запрошенная дата выпадает на выходной
	ErrNotBusinessDay = errors.New("book_consultation: date is not a business day")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("book_consultation: date is too far in the future")

	// ErrInvalidTimeSlot возвращается, когда время вне рабочих часов или не совпадает с сеткой слотов
	ErrInvalidTimeSlot = errors.New("book_consultation: invalid time slot")

	// ErrTooLateToBook возвращается, когда запись нарушает minBookingNoticeMinutes
	ErrTooLateToBook = errors.New("book_consultation: too late to book this slot")

	// ErrSlotNotAvailable возвращается, когда выбранный слот занят
	ErrSlotNotAvailable = errors.New("book_consultation: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_consultation: internal error")
)
