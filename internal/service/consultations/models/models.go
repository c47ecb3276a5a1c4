package models

import (
	"errors"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid consultation status")
)

// Request модели

// CancelConsultationRequest запрос на отмену консультации
// ByStaff выставляется хендлером по результату проверки менеджерского ключа
type CancelConsultationRequest struct {
	ByStaff            bool   `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса консультации
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetClientConsultationsRequest запрос на получение консультаций клиента
type GetClientConsultationsRequest struct {
	Email  string  `json:"email"`
	Status *string `json:"status,omitempty"`
}

// ListConsultationsRequest запрос на получение консультаций с фильтрацией
type ListConsultationsRequest struct {
	Email           *string    `json:"email,omitempty"`           // Фильтр по email клиента (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListConsultationsRequest) ToDomainFilter() (domain.ConsultationsFilter, error) {
	filter := domain.ConsultationsFilter{
		Email:           r.Email,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainConsultationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ConsultationResponse ответ с данными консультации
type ConsultationResponse struct {
	ID int64 `json:"id"`

	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	Company     string  `json:"company"`
	JobTitle    *string `json:"jobTitle,omitempty"`
	Industry    *string `json:"industry,omitempty"`
	ProjectType *string `json:"projectType,omitempty"`
	Message     *string `json:"message,omitempty"`
	Timezone    string  `json:"timezone"`

	ScheduledDate   string `json:"scheduledDate"` // "2025-06-16"
	StartTime       string `json:"startTime"`     // "14:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	EventUID *string `json:"eventUid,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConsultationListResponse ответ со списком консультаций
type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
}

// Методы конвертации

// FromDomainConsultation конвертирует domain модель в DTO
func FromDomainConsultation(c *domain.Consultation) *ConsultationResponse {
	if c == nil {
		return nil
	}

	resp := &ConsultationResponse{
		ID:                 c.ID,
		FirstName:          c.FirstName,
		LastName:           c.LastName,
		Email:              c.Email,
		Company:            c.Company,
		JobTitle:           c.JobTitle,
		Industry:           c.Industry,
		ProjectType:        c.ProjectType,
		Message:            c.Message,
		Timezone:           c.Timezone,
		ScheduledDate:      c.ScheduledDate.Format(domain.DateFormat),
		StartTime:          c.StartTime.String(),
		DurationMinutes:    c.DurationMinutes,
		Status:             string(c.Status),
		EventUID:           c.EventUID,
		CancellationReason: c.CancellationReason,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if c.CancelledAt != nil {
		cancelledStr := c.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainConsultationList конвертирует список domain моделей в DTO
func FromDomainConsultationList(consultations []*domain.Consultation) *ConsultationListResponse {
	if consultations == nil {
		return &ConsultationListResponse{
			Consultations: []ConsultationResponse{},
		}
	}

	resp := &ConsultationListResponse{
		Consultations: make([]ConsultationResponse, len(consultations)),
	}

	for i, consultation := range consultations {
		if consultationResp := FromDomainConsultation(consultation); consultationResp != nil {
			resp.Consultations[i] = *consultationResp
		}
	}

	return resp
}

// ToDomainConsultationStatus конвертирует строку в domain.ConsultationStatus с валидацией
func ToDomainConsultationStatus(status string) (domain.ConsultationStatus, error) {
	s := domain.ConsultationStatus(status)

	// Валидируем статус
	validStatuses := []domain.ConsultationStatus{
		domain.StatusPendingConfirmation,
		domain.StatusConfirmed,
		domain.StatusCompleted,
		domain.StatusCancelledByClient,
		domain.StatusCancelledByStaff,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
