package domain

import (
	"strings"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// ConsultationStatus represents the status of a consultation
type ConsultationStatus string

const (
	StatusPendingConfirmation ConsultationStatus = "pending_confirmation"
	StatusConfirmed           ConsultationStatus = "confirmed"
	StatusCompleted           ConsultationStatus = "completed"
	StatusCancelledByClient   ConsultationStatus = "cancelled_by_client"
	StatusCancelledByStaff    ConsultationStatus = "cancelled_by_staff"
	StatusNoShow              ConsultationStatus = "no_show"
)

// Consultation represents a scheduled consultation created from a
// lead-capture form submission
type Consultation struct {
	ID int64

	// Lead data
	FirstName   string
	LastName    string
	Email       string
	Company     string
	JobTitle    *string
	Industry    *string
	ProjectType *string
	Message     *string
	Timezone    string

	// Schedule
	ScheduledDate   time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ConsultationStatus

	// Calendar event identity at the provider
	EventUID *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClientFullName returns the client's display name
func (c *Consultation) ClientFullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// IsActive returns true if the consultation occupies its slot
func (c *Consultation) IsActive() bool {
	return c.Status != StatusCancelledByClient &&
		c.Status != StatusCancelledByStaff &&
		c.Status != StatusNoShow
}

// CanBeCancelled returns true if the consultation can be cancelled
func (c *Consultation) CanBeCancelled() bool {
	return c.Status == StatusPendingConfirmation || c.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the consultation can be moved to another slot
func (c *Consultation) CanBeRescheduled() bool {
	return c.Status == StatusPendingConfirmation || c.Status == StatusConfirmed
}

// IsCancelled returns true if the consultation has been cancelled
func (c *Consultation) IsCancelled() bool {
	return c.Status == StatusCancelledByClient || c.Status == StatusCancelledByStaff
}

// IsCompleted returns true if the consultation took place or was a no-show
func (c *Consultation) IsCompleted() bool {
	return c.Status == StatusCompleted || c.Status == StatusNoShow
}

// ConsultationsFilter фильтр для выборки консультаций
type ConsultationsFilter struct {
	Email           *string             // Фильтр по email клиента (опционально)
	StartDate       *time.Time          // Начало периода (опционально)
	EndDate         *time.Time          // Конец периода (опционально)
	Status          *ConsultationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool                // Включать ли отменённые и no-show
}
