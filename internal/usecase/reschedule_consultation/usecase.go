package reschedule_consultation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/ics"
	consultationRepo "github.com/NovaCoreVectra/NCV-ConsultationService/internal/infra/storage/consultation"
	calendarClient "github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/calendarservice"
)

// UseCase use case переноса консультации на другой слот
type UseCase struct {
	consultationRepo ConsultationRepository
	outboxRepo       OutboxRepository
	calendarClient   CalendarServiceClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	policy           domain.SchedulePolicy
	organizer        domain.EventOrganizer
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	consultationRepo ConsultationRepository,
	outboxRepo OutboxRepository,
	calendarClient CalendarServiceClient,
	txManager TransactionManager,
	policy domain.SchedulePolicy,
	organizer domain.EventOrganizer,
	logger Logger,
) *UseCase {
	return &UseCase{
		consultationRepo: consultationRepo,
		outboxRepo:       outboxRepo,
		calendarClient:   calendarClient,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		policy:           policy,
		organizer:        organizer,
		logger:           logger,
	}
}

// Execute выполняет use case переноса консультации
// Новый слот проходит те же проверки, что и при создании записи;
// проверка доступности и обновление выполняются в сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleConsultation: id=%d, date=%s, time=%s, byStaff=%t",
		req.ConsultationID, req.Date.Format(domain.DateFormat), req.StartTime, req.ByStaff)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleConsultation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в сервисной таймзоне
	now := uc.timeProvider.Now().In(uc.policy.Location)

	// 3. Получаем консультацию
	consultation, err := uc.consultationRepo.GetByID(ctx, req.ConsultationID)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			uc.logger.Warn("RescheduleConsultation: consultation id=%d not found", req.ConsultationID)
			return nil, ErrConsultationNotFound
		}
		uc.logger.Error("RescheduleConsultation: failed to get consultation id=%d: %v", req.ConsultationID, err)
		return nil, fmt.Errorf("%w: failed to get consultation: %v", ErrInternal, err)
	}

	if !consultation.CanBeRescheduled() {
		uc.logger.Warn("RescheduleConsultation: consultation id=%d cannot be rescheduled, status=%s",
			req.ConsultationID, consultation.Status)
		return nil, ErrCannotReschedule
	}

	// 4. Валидация новой даты и времени
	if err := validateDate(req.Date, now, uc.policy); err != nil {
		uc.logger.Warn("RescheduleConsultation: date validation failed: %v", err)
		return nil, err
	}
	if err := validateStartTime(req.StartTime, uc.policy); err != nil {
		uc.logger.Warn("RescheduleConsultation: time validation failed: %v", err)
		return nil, err
	}
	if err := validateBookingNotice(req.Date, req.StartTime, now, uc.policy.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("RescheduleConsultation: notice validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем занятость календаря организатора на новую дату
	busy, err := uc.calendarClient.GetBusyIntervalsWithGracefulDegradation(ctx, req.Date)
	if err != nil {
		if errors.Is(err, calendarClient.ErrCalendarNotFound) {
			uc.logger.Error("RescheduleConsultation: organizer calendar not found: %v", err)
			return nil, fmt.Errorf("%w: organizer calendar not found", ErrInternal)
		}
		uc.logger.Warn("RescheduleConsultation: calendar provider degraded, using local availability only: %v", err)
		busy = nil
	}

	// 6. Новый UID: перенесённая встреча - новое событие календаря
	newEventUID := uuid.NewString()
	oldEventUID := consultation.EventUID

	var event domain.CalendarEvent

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем активные консультации на новую дату с блокировкой (FOR UPDATE)
		filter := domain.ConsultationsFilter{
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		consultations, err := uc.consultationRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleConsultation: failed to get consultations: %v", err)
			return fmt.Errorf("%w: failed to get consultations: %v", ErrInternal, err)
		}

		// 7.2. Проверяем доступность нового слота (без учёта переносимой записи)
		conflicts, err := countSlotConflicts(req.StartTime, consultation.DurationMinutes,
			consultation.ID, consultations, busy)
		if err != nil {
			uc.logger.Error("RescheduleConsultation: failed to count slot conflicts: %v", err)
			return fmt.Errorf("%w: failed to count slot conflicts: %v", ErrInternal, err)
		}

		if conflicts >= uc.policy.MaxConcurrentMeetings {
			uc.logger.Warn("RescheduleConsultation: slot %s %s not available, %d/%d spots taken",
				req.Date.Format(domain.DateFormat), req.StartTime, conflicts, uc.policy.MaxConcurrentMeetings)
			return ErrSlotNotAvailable
		}

		// 7.3. Переносим консультацию
		if err := uc.consultationRepo.Reschedule(txCtx, consultation.ID, req.Date, req.StartTime, newEventUID); err != nil {
			if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
				return ErrConsultationNotFound
			}
			uc.logger.Error("RescheduleConsultation: failed to reschedule consultation id=%d: %v", consultation.ID, err)
			return fmt.Errorf("%w: failed to reschedule consultation: %v", ErrInternal, err)
		}

		// 7.4. Синтезируем новое событие и свежее приглашение
		moved := *consultation
		moved.ScheduledDate = req.Date
		moved.StartTime = req.StartTime

		event = domain.NewConsultationEvent(&moved, newEventUID, uc.organizer, uc.policy.Location)

		icsPayload, err := ics.Encode(&event, now)
		if err != nil {
			uc.logger.Error("RescheduleConsultation: failed to encode ics: %v", err)
			return fmt.Errorf("%w: failed to encode ics: %v", ErrInternal, err)
		}

		invitation := &domain.Invitation{
			ConsultationID: consultation.ID,
			RecipientEmail: consultation.Email,
			RecipientName:  consultation.ClientFullName(),
			Subject:        event.Summary,
			BodyText:       event.Description,
			ICSPayload:     icsPayload,
		}

		if _, err := uc.outboxRepo.Enqueue(txCtx, invitation); err != nil {
			uc.logger.Error("RescheduleConsultation: failed to enqueue invitation: %v", err)
			return fmt.Errorf("%w: failed to enqueue invitation: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 8. Синхронизируем календарь провайдера (best effort)
	// Сначала удаляем старое событие, затем создаем новое
	if oldEventUID != nil {
		if err := uc.calendarClient.DeleteEvent(ctx, *oldEventUID); err != nil {
			uc.logger.Error("RescheduleConsultation: failed to delete old provider event uid=%s: %v", *oldEventUID, err)
		}
	}
	if err := uc.createProviderEvent(ctx, &event); err != nil {
		uc.logger.Error("RescheduleConsultation: failed to create provider event uid=%s: %v", newEventUID, err)
	}

	uc.logger.Info("RescheduleConsultation: successfully moved consultation id=%d to %s %s",
		consultation.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	return &Response{
		ID:              consultation.ID,
		ScheduledDate:   req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: consultation.DurationMinutes,
		Status:          string(consultation.Status),
		EventUID:        newEventUID,
		UpdatedAt:       now,
	}, nil
}

// createProviderEvent отправляет событие календарному провайдеру
func (uc *UseCase) createProviderEvent(ctx context.Context, event *domain.CalendarEvent) error {
	payload := &calendarClient.EventPayload{
		UID:         event.UID,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Start:       event.Start.Format(time.RFC3339),
		End:         event.End.Format(time.RFC3339),
		Organizer:   event.OrganizerEmail,
		Attendees:   []string{event.AttendeeEmail},
	}

	return uc.calendarClient.CreateEvent(ctx, payload)
}
