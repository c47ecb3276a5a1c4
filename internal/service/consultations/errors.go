package consultations

import "errors"

var (
	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = errors.New("consultation not found")

	// ErrCannotCancel возвращается, когда консультация не может быть отменена
	ErrCannotCancel = errors.New("consultation cannot be cancelled")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid consultation status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
