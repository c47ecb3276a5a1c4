package update_status

import (
	"context"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations/models"
)

type ConsultationsService interface {
	UpdateStatus(ctx context.Context, consultationID int64, req *models.UpdateStatusRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
