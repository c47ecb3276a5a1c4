package get_available_slots

import (
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	getAvailableSlots "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date  string          `json:"date"`
	Slots []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	AvailableSpots  int    `json:"availableSpots"`
	TotalSpots      int    `json:"totalSpots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
		}
	}

	return &AvailableSlotsResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Date: date,
	}, nil
}
