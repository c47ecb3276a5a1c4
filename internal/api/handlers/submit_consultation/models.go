package submit_consultation

import (
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	bookConsultation "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/book_consultation"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// SubmitConsultationRequest HTTP request model
// Заявка с формы: обязательные контактные поля, опциональные детали
// и предпочтительные дата и время
type SubmitConsultationRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Company     string  `json:"company"`
	JobTitle    *string `json:"jobTitle,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	ProjectType *string `json:"projectType,omitempty"`
	Message     *string `json:"message,omitempty"`
	Timezone    string  `json:"timezone,omitempty"`

	PreferredDate *string `json:"preferredDate,omitempty"` // "2025-06-16"
	PreferredTime *string `json:"preferredTime,omitempty"` // "14:00"
}

// ConsultationResponse HTTP response model
type ConsultationResponse struct {
	ID              int64  `json:"id"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Company         string `json:"company"`
	ScheduledDate   string `json:"scheduledDate"`
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Timezone        string `json:"timezone"`
	EventUID        string `json:"eventUid"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitConsultationRequest) ToUseCaseRequest() (*bookConsultation.Request, error) {
	req := &bookConsultation.Request{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Company:     r.Company,
		JobTitle:    r.JobTitle,
		Industry:    r.Industry,
		ProjectType: r.ProjectType,
		Message:     r.Message,
		Timezone:    r.Timezone,
	}

	// Парсим предпочтительную дату, если указана
	if r.PreferredDate != nil && *r.PreferredDate != "" {
		date, err := time.Parse(domain.DateFormat, *r.PreferredDate)
		if err != nil {
			return nil, err
		}
		req.PreferredDate = &date
	}

	// Парсим предпочтительное время, если указано
	if r.PreferredTime != nil && *r.PreferredTime != "" {
		startTime, err := types.NewTimeStringFromString(*r.PreferredTime)
		if err != nil {
			return nil, err
		}
		req.PreferredTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookConsultation.Response) *ConsultationResponse {
	return &ConsultationResponse{
		ID:              resp.ID,
		FirstName:       resp.FirstName,
		LastName:        resp.LastName,
		Email:           resp.Email,
		Company:         resp.Company,
		ScheduledDate:   resp.ScheduledDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Timezone:        resp.Timezone,
		EventUID:        resp.EventUID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
