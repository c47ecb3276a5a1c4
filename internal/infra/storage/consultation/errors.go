package consultation

import "errors"

var (
	// ErrConsultationNotFound возвращается, когда консультация не найдена
	ErrConsultationNotFound = errors.New("consultation.repository: consultation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("consultation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("consultation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("consultation.repository: failed to scan row")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("consultation.repository: invalid consultation status")
)
