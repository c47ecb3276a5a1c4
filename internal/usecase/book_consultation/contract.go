package book_consultation

import (
	"context"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/calendarservice"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *domain.Consultation) (*domain.Consultation, error)
	GetWithFilter(ctx context.Context, filter domain.ConsultationsFilter) ([]*domain.Consultation, error)
}

// OutboxRepository интерфейс репозитория outbox приглашений
type OutboxRepository interface {
	Enqueue(ctx context.Context, invitation *domain.Invitation) (*domain.Invitation, error)
}

// CalendarServiceClient интерфейс клиента календарного провайдера
type CalendarServiceClient interface {
	GetBusyIntervalsWithGracefulDegradation(ctx context.Context, date time.Time) ([]calendarservice.BusyInterval, error)
	CreateEvent(ctx context.Context, event *calendarservice.EventPayload) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
