package reschedule_consultation

import (
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	rescheduleConsultation "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/reschedule_consultation"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// RescheduleConsultationRequest HTTP request model
type RescheduleConsultationRequest struct {
	Date      string `json:"date"`      // "2025-06-17"
	StartTime string `json:"startTime"` // "10:30"
}

// RescheduleConsultationResponse HTTP response model
type RescheduleConsultationResponse struct {
	ID              int64  `json:"id"`
	ScheduledDate   string `json:"scheduledDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	EventUID        string `json:"eventUid"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleConsultationRequest) ToUseCaseRequest(consultationID int64) (*rescheduleConsultation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleConsultation.Request{
		ConsultationID: consultationID,
		Date:           date,
		StartTime:      startTime,
		ByStaff:        true,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleConsultation.Response) *RescheduleConsultationResponse {
	return &RescheduleConsultationResponse{
		ID:              resp.ID,
		ScheduledDate:   resp.ScheduledDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		EventUID:        resp.EventUID,
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
