package invitations

import (
	"context"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/mailservice"
)

// OutboxRepository интерфейс репозитория outbox приглашений
type OutboxRepository interface {
	GetPending(ctx context.Context, limit, maxAttempts int) ([]*domain.Invitation, error)
	MarkSent(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, sendErr string) error
}

// MailServiceClient интерфейс клиента почтового релея
type MailServiceClient interface {
	Send(ctx context.Context, msg *mailservice.Message) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс счётчиков доставки приглашений
type Metrics interface {
	IncInvitationProcessed(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
