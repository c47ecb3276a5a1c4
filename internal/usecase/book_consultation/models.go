package book_consultation

import (
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// Request модель запроса на запись на консультацию
// PreferredDate и PreferredTime опциональны: без них консультация
// назначается на следующий рабочий день на время по умолчанию
type Request struct {
	FirstName   string
	LastName    string
	Email       string
	Company     string
	JobTitle    *string
	Industry    *string
	ProjectType *string
	Message     *string
	Timezone    string // IANA имя, опционально

	PreferredDate *time.Time
	PreferredTime *types.TimeString
}

// Response модель ответа с созданной консультацией
type Response struct {
	ID int64

	FirstName string
	LastName  string
	Email     string
	Company   string

	ScheduledDate   time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	Timezone        string

	EventUID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
