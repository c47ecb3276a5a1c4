package calendarservice

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден у провайдера
	ErrCalendarNotFound = errors.New("calendarservice client: calendar not found")

	// ErrEventNotFound возвращается, когда событие не найдено у провайдера
	ErrEventNotFound = errors.New("calendarservice client: event not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("calendarservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что провайдер недоступен и доступность слота следует
	// проверять только по локальным данным
	ErrServiceDegraded = errors.New("calendarservice unavailable: graceful degradation applied")
)
