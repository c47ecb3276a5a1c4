package cancel_consultation

import "github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations/models"

// CancelConsultationRequest HTTP request model
// ByClient выставляется, когда отмена выполняется от имени клиента
// (менеджер обрабатывает запрос клиента); без него отмена считается штатной
type CancelConsultationRequest struct {
	CancellationReason string `json:"cancellationReason"`
	ByClient           bool   `json:"byClient,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelConsultationRequest) ToServiceRequest() *models.CancelConsultationRequest {
	return &models.CancelConsultationRequest{
		ByStaff:            !r.ByClient,
		CancellationReason: r.CancellationReason,
	}
}
