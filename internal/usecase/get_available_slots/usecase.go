package get_available_slots

import (
	"context"
	"fmt"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
)

// UseCase use case для получения доступных слотов консультаций
type UseCase struct {
	consultationRepo ConsultationRepository
	calendarClient   CalendarServiceClient
	timeProvider     TimeProvider
	policy           domain.SchedulePolicy
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	consultationRepo ConsultationRepository,
	calendarClient CalendarServiceClient,
	policy domain.SchedulePolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		consultationRepo: consultationRepo,
		calendarClient:   calendarClient,
		timeProvider:     &RealTimeProvider{},
		policy:           policy,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в сервисной таймзоне
	now := uc.timeProvider.Now().In(uc.policy.Location)

	// 3. Валидация даты
	if err := validateDate(req.Date, now, uc.policy); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. На выходной день слотов нет
	if !domain.IsBusinessDay(req.Date) {
		uc.logger.Info("GetAvailableSlots: %s is not a business day", req.Date.Format(domain.DateFormat))
		return &Response{
			Date:  req.Date,
			Slots: []Slot{},
		}, nil
	}

	// 5. Перечисляем слоты каталога с учётом минимального времени до записи
	timeSlots, err := enumerateSlots(uc.policy, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to enumerate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to enumerate slots: %v", ErrInternal, err)
	}

	// 6. Получаем активные консультации на эту дату
	filter := domain.ConsultationsFilter{
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	consultations, err := uc.consultationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get consultations: %v", err)
		return nil, fmt.Errorf("%w: failed to get consultations: %v", ErrInternal, err)
	}

	// 7. Получаем занятость календаря организатора
	// При недоступности провайдера доступность считается только по локальным записям
	busy, err := uc.calendarClient.GetBusyIntervalsWithGracefulDegradation(ctx, req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: calendar provider degraded, using local availability only: %v", err)
		busy = nil
	}

	// 8. Вычисляем доступность для каждого слота
	slots := calculateAvailableSpots(timeSlots, uc.policy, consultations, busy)

	uc.logger.Info("GetAvailableSlots: generated %d slots for date=%s",
		len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}
