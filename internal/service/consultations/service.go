package consultations

import (
	"context"
	"errors"
	"fmt"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	consultationRepo "github.com/NovaCoreVectra/NCV-ConsultationService/internal/infra/storage/consultation"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations/models"
)

// Service сервис для работы с консультациями
type Service struct {
	consultationRepo ConsultationRepository
	calendarClient   CalendarServiceClient
	logger           Logger
}

// NewService создает новый экземпляр сервиса консультаций
func NewService(
	consultationRepo ConsultationRepository,
	calendarClient CalendarServiceClient,
	logger Logger,
) *Service {
	return &Service{
		consultationRepo: consultationRepo,
		calendarClient:   calendarClient,
		logger:           logger,
	}
}

// GetByID получает консультацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ConsultationResponse, error) {
	s.logger.Info("GetByID: fetching consultation id=%d", id)

	consultation, err := s.consultationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("GetByID: consultation id=%d not found", id)
			return nil, ErrConsultationNotFound
		}
		s.logger.Error("GetByID: repository error for consultation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched consultation id=%d", id)
	return models.FromDomainConsultation(consultation), nil
}

// GetClientConsultations получает историю консультаций клиента по email
// Опционально фильтрует по статусу
func (s *Service) GetClientConsultations(ctx context.Context, req *models.GetClientConsultationsRequest) (*models.ConsultationListResponse, error) {
	s.logger.Info("GetClientConsultations: fetching consultations for email=%s, status=%v", req.Email, req.Status)

	// Конвертируем статус из строки в domain.ConsultationStatus
	var domainStatus *domain.ConsultationStatus
	if req.Status != nil {
		status, err := models.ToDomainConsultationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientConsultations: invalid status=%s for email=%s", *req.Status, req.Email)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	consultations, err := s.consultationRepo.GetByEmail(ctx, req.Email, domainStatus)
	if err != nil {
		s.logger.Error("GetClientConsultations: repository error for email=%s: %v", req.Email, err)
		return nil, fmt.Errorf("%w: GetClientConsultations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientConsultations: successfully fetched %d consultations for email=%s", len(consultations), req.Email)
	return models.FromDomainConsultationList(consultations), nil
}

// ListConsultations получает консультации с гибкой фильтрацией
// Поддерживает фильтрацию по email, периоду, статусу и включению неактивных записей
// Доступно только менеджерам (проверка ключа выполняется на уровне middleware)
//
// Примеры использования:
// - Все активные консультации: ListConsultations(ctx, &ListConsultationsRequest{})
// - Консультации на дату: StartDate и EndDate указывают на одну дату
// - Консультации за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) ListConsultations(ctx context.Context, req *models.ListConsultationsRequest) (*models.ConsultationListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := "ListConsultations: fetching consultations"
	if req.Email != nil {
		logMsg += fmt.Sprintf(", email=%s", *req.Email)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListConsultations: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем консультации с фильтрацией
	consultations, err := s.consultationRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListConsultations: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListConsultations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListConsultations: successfully fetched %d consultations", len(consultations))
	return models.FromDomainConsultationList(consultations), nil
}

// Cancel отменяет консультацию
// Клиент отменяет свою консультацию (cancelled_by_client),
// менеджер отменяет любую (cancelled_by_staff)
// Если у консультации было создано событие в календаре - удаляем его у провайдера
func (s *Service) Cancel(ctx context.Context, consultationID int64, req *models.CancelConsultationRequest) error {
	s.logger.Info("Cancel: cancelling consultation id=%d, byStaff=%t", consultationID, req.ByStaff)

	// Получаем консультацию
	consultation, err := s.consultationRepo.GetByID(ctx, consultationID)
	if err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("Cancel: consultation id=%d not found", consultationID)
			return ErrConsultationNotFound
		}
		s.logger.Error("Cancel: repository error for consultation id=%d: %v", consultationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить консультацию
	if !consultation.CanBeCancelled() {
		s.logger.Warn("Cancel: consultation id=%d cannot be cancelled, status=%s", consultationID, consultation.Status)
		return ErrCannotCancel
	}

	// Определяем статус отмены в зависимости от инициатора
	cancelStatus := domain.StatusCancelledByClient
	if req.ByStaff {
		cancelStatus = domain.StatusCancelledByStaff
	}

	// Отменяем консультацию
	if err := s.consultationRepo.Cancel(ctx, consultationID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("Cancel: consultation id=%d not found during cancellation", consultationID)
			return ErrConsultationNotFound
		}
		s.logger.Error("Cancel: repository error for consultation id=%d: %v", consultationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Удаляем событие из календаря организатора
	// Ошибка удаления не откатывает отмену - слот уже освобождён локально
	if consultation.EventUID != nil {
		if err := s.calendarClient.DeleteEvent(ctx, *consultation.EventUID); err != nil {
			s.logger.Error("Cancel: failed to delete calendar event uid=%s for consultation id=%d: %v",
				*consultation.EventUID, consultationID, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled consultation id=%d with status=%s", consultationID, cancelStatus)
	return nil
}

// UpdateStatus обновляет статус консультации
// Доступно только менеджерам (проверка ключа выполняется на уровне middleware)
func (s *Service) UpdateStatus(ctx context.Context, consultationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating consultation id=%d to status=%s", consultationID, req.Status)

	// Получаем консультацию
	if _, err := s.consultationRepo.GetByID(ctx, consultationID); err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("UpdateStatus: consultation id=%d not found", consultationID)
			return ErrConsultationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for consultation id=%d: %v", consultationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainConsultationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for consultation id=%d", req.Status, consultationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.consultationRepo.UpdateStatus(ctx, consultationID, newStatus); err != nil {
		if errors.Is(err, consultationRepo.ErrConsultationNotFound) {
			s.logger.Warn("UpdateStatus: consultation id=%d not found during update", consultationID)
			return ErrConsultationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for consultation id=%d: %v", consultationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated consultation id=%d to status=%s", consultationID, newStatus)
	return nil
}
