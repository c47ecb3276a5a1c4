package book_consultation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/ics"
	calendarClient "github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/calendarservice"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/ptr"
)

// UseCase use case записи на консультацию
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

// Execute выполняет use case записи на консультацию
// Проверка доступности слота и вставка выполняются в сериализуемой
// транзакции для предотвращения гонки между параллельными заявками
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookConsultation: email=%s, company=%s", req.Email, req.Company)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookConsultation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в сервисной таймзоне
	now := uc.timeProvider.Now().In(uc.policy.Location)

	// 3. Определяем дату и время: явные предпочтения или
	// следующий рабочий день на время по умолчанию
	date, startTime := resolveSchedule(req, now, uc.policy)

	// 4. Валидация даты и времени
	if err := validateDate(date, now, uc.policy); err != nil {
		uc.logger.Warn("BookConsultation: date validation failed for %s: %v", date.Format(domain.DateFormat), err)
		return nil, err
	}
	if err := validateStartTime(startTime, uc.policy); err != nil {
		uc.logger.Warn("BookConsultation: time validation failed for %s: %v", startTime, err)
		return nil, err
	}
	if err := validateBookingNotice(date, startTime, now, uc.policy.MinBookingNoticeMinutes); err != nil {
		uc.logger.Warn("BookConsultation: notice validation failed: %v", err)
		return nil, err
	}

	// 5. Получаем занятость календаря организатора
	// При недоступности провайдера решает только локальная проверка
	busy, err := uc.calendarClient.GetBusyIntervalsWithGracefulDegradation(ctx, date)
	if err != nil {
		if errors.Is(err, calendarClient.ErrCalendarNotFound) {
			uc.logger.Error("BookConsultation: organizer calendar not found: %v", err)
			return nil, fmt.Errorf("%w: organizer calendar not found", ErrInternal)
		}
		uc.logger.Warn("BookConsultation: calendar provider degraded, using local availability only: %v", err)
		busy = nil
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = uc.policy.Location.String()
	}

	// 6. UID будущего события календаря
	eventUID := uuid.NewString()

	var result *domain.Consultation
	var event domain.CalendarEvent

	// 7. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Получаем активные консультации на эту дату с блокировкой (FOR UPDATE)
		filter := domain.ConsultationsFilter{
			StartDate:       &date,
			EndDate:         &date,
			IncludeInactive: false,
		}

		consultations, err := uc.consultationRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("BookConsultation: failed to get consultations: %v", err)
			return fmt.Errorf("%w: failed to get consultations: %v", ErrInternal, err)
		}

		// 7.2. Проверяем доступность слота
		conflicts, err := countSlotConflicts(startTime, uc.policy.MeetingDurationMinutes, consultations, busy)
		if err != nil {
			uc.logger.Error("BookConsultation: failed to count slot conflicts: %v", err)
			return fmt.Errorf("%w: failed to count slot conflicts: %v", ErrInternal, err)
		}

		if conflicts >= uc.policy.MaxConcurrentMeetings {
			uc.logger.Warn("BookConsultation: slot %s %s not available, %d/%d spots taken",
				date.Format(domain.DateFormat), startTime, conflicts, uc.policy.MaxConcurrentMeetings)
			return ErrSlotNotAvailable
		}

		// 7.3. Создаем консультацию
		consultation := &domain.Consultation{
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Email:           req.Email,
			Company:         req.Company,
			JobTitle:        req.JobTitle,
			Industry:        req.Industry,
			ProjectType:     req.ProjectType,
			Message:         req.Message,
			Timezone:        timezone,
			ScheduledDate:   date,
			StartTime:       startTime,
			DurationMinutes: uc.policy.MeetingDurationMinutes,
			Status:          domain.StatusConfirmed,
			EventUID:        ptr.Ptr(eventUID),
		}

		created, err := uc.consultationRepo.Create(txCtx, consultation)
		if err != nil {
			uc.logger.Error("BookConsultation: failed to create consultation: %v", err)
			return fmt.Errorf("%w: failed to create consultation: %v", ErrInternal, err)
		}

		// 7.4. Синтезируем событие календаря и ICS приглашение
		event = domain.NewConsultationEvent(created, eventUID, uc.organizer, uc.policy.Location)

		icsPayload, err := ics.Encode(&event, now)
		if err != nil {
			uc.logger.Error("BookConsultation: failed to encode ics: %v", err)
			return fmt.Errorf("%w: failed to encode ics: %v", ErrInternal, err)
		}

		// 7.5. Ставим приглашение в outbox в той же транзакции
		invitation := &domain.Invitation{
			ConsultationID: created.ID,
			RecipientEmail: created.Email,
			RecipientName:  created.ClientFullName(),
			Subject:        event.Summary,
			BodyText:       event.Description,
			ICSPayload:     icsPayload,
		}

		if _, err := uc.outboxRepo.Enqueue(txCtx, invitation); err != nil {
			uc.logger.Error("BookConsultation: failed to enqueue invitation: %v", err)
			return fmt.Errorf("%w: failed to enqueue invitation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 8. Создаем событие у календарного провайдера (best effort)
	// Слот уже занят локально, ошибка провайдера запись не откатывает
	if err := uc.createProviderEvent(ctx, &event); err != nil {
		uc.logger.Error("BookConsultation: failed to create provider event uid=%s: %v", eventUID, err)
	}

	uc.logger.Info("BookConsultation: successfully created consultation id=%d on %s at %s",
		result.ID, result.ScheduledDate.Format(domain.DateFormat), result.StartTime)

	return &Response{
		ID:              result.ID,
		FirstName:       result.FirstName,
		LastName:        result.LastName,
		Email:           result.Email,
		Company:         result.Company,
		ScheduledDate:   result.ScheduledDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Timezone:        result.Timezone,
		EventUID:        eventUID,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
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
