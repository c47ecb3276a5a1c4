package reschedule_consultation

import (
	"context"

	rescheduleConsultation "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/reschedule_consultation"
)

type RescheduleConsultationUseCase interface {
	Execute(ctx context.Context, req *rescheduleConsultation.Request) (*rescheduleConsultation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
