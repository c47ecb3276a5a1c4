package outbox

import "errors"

var (
	// ErrInvitationNotFound возвращается, когда запись outbox не найдена
	ErrInvitationNotFound = errors.New("outbox.repository: invitation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("outbox.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("outbox.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("outbox.repository: failed to scan row")
)
