package get_client_consultations

import (
	"context"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations/models"
)

type ConsultationsService interface {
	GetClientConsultations(ctx context.Context, req *models.GetClientConsultationsRequest) (*models.ConsultationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
