package get_available_slots

import (
	"context"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/calendarservice"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	GetWithFilter(ctx context.Context, filter domain.ConsultationsFilter) ([]*domain.Consultation, error)
}

// CalendarServiceClient интерфейс клиента календарного провайдера
type CalendarServiceClient interface {
	GetBusyIntervalsWithGracefulDegradation(ctx context.Context, date time.Time) ([]calendarservice.BusyInterval, error)
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
