package consultations

import (
	"context"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
)

// ConsultationRepository интерфейс репозитория консультаций
type ConsultationRepository interface {
	Create(ctx context.Context, consultation *domain.Consultation) (*domain.Consultation, error)
	GetByID(ctx context.Context, id int64) (*domain.Consultation, error)
	GetByEmail(ctx context.Context, email string, status *domain.ConsultationStatus) ([]*domain.Consultation, error)
	GetWithFilter(ctx context.Context, filter domain.ConsultationsFilter) ([]*domain.Consultation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ConsultationStatus) error
	Cancel(ctx context.Context, id int64, status domain.ConsultationStatus, reason string) error
}

// CalendarServiceClient интерфейс клиента календарного провайдера
type CalendarServiceClient interface {
	DeleteEvent(ctx context.Context, uid string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
