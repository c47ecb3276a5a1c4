package reschedule_consultation

import (
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// Request модель запроса на перенос консультации
type Request struct {
	ConsultationID int64
	Date           time.Time        // Новая дата
	StartTime      types.TimeString // Новое время начала
	ByStaff        bool             // Инициатор переноса (для логирования)
}

// Response модель ответа с перенесённой консультацией
type Response struct {
	ID int64

	ScheduledDate   time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	EventUID string

	UpdatedAt time.Time
}
