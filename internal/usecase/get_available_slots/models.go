package get_available_slots

import (
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
// На выходной день список пуст
type Response struct {
	Date  time.Time // Дата, на которую запрашивались слоты
	Slots []Slot    // Список слотов каталога с доступностью
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "14:00")
	DurationMinutes int              // Длительность встречи в минутах
	AvailableSpots  int              // Количество свободных мест
	TotalSpots      int              // Общее количество мест
}
