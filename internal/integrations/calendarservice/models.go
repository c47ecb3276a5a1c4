package calendarservice

import "github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"

// BusyInterval занятый интервал в календаре организатора
type BusyInterval struct {
	Start types.TimeString `json:"start"` // "10:00"
	End   types.TimeString `json:"end"`   // "11:00"
}

// busyResponse ответ провайдера на запрос занятых интервалов
type busyResponse struct {
	Date      string         `json:"date"`
	Intervals []BusyInterval `json:"intervals"`
}

// EventPayload событие, создаваемое у провайдера
type EventPayload struct {
	UID         string   `json:"uid"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Location    string   `json:"location,omitempty"`
	Start       string   `json:"start"` // RFC 3339
	End         string   `json:"end"`   // RFC 3339
	Organizer   string   `json:"organizer"`
	Attendees   []string `json:"attendees"`
}

// ErrorResponse модель ошибки от провайдера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
