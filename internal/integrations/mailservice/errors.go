package mailservice

import "errors"

var (
	// ErrRejected возвращается, когда релей отклонил письмо (некорректный адрес и т.п.)
	ErrRejected = errors.New("mailservice client: message rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от релея
	ErrInvalidResponse = errors.New("mailservice client: invalid response")
)
