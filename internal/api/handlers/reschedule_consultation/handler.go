package reschedule_consultation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers"
	rescheduleConsultation "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/reschedule_consultation"
)

const (
	msgInvalidConsultationID = "invalid consultation ID"
	msgInvalidRequestBody    = "invalid request body"
	msgInvalidDateOrTime     = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgConsultationNotFound  = "consultation not found"
	msgCannotReschedule      = "consultation cannot be rescheduled in its current status"
	msgInvalidDate           = "consultation date is invalid"
	msgNotBusinessDay        = "consultations are held Monday through Friday only"
	msgDateTooFar            = "consultation date is too far in the future"
	msgInvalidTimeSlot       = "requested time is outside business hours or off the slot grid"
	msgTooLateToBook         = "too late to book this slot"
	msgSlotNotAvailable      = "requested time slot is not available"
)

type Handler struct {
	useCase RescheduleConsultationUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleConsultationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/consultations/{consultationId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем consultationId из URL
	consultationIDStr := vars["consultationId"]
	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /consultations/{id}/reschedule - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	var req RescheduleConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /consultations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(consultationID)
	if err != nil {
		h.logger.Warn("PATCH /consultations/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, rescheduleConsultation.ErrInvalidInput):
			h.logger.Warn("PATCH /consultations/{id}/reschedule - Invalid input: consultation_id=%d", consultationID)
			handlers.RespondBadRequest(w, msgInvalidDateOrTime)

		case errors.Is(err, rescheduleConsultation.ErrConsultationNotFound):
			h.logger.Warn("PATCH /consultations/{id}/reschedule - Consultation not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgConsultationNotFound)

		case errors.Is(err, rescheduleConsultation.ErrCannotReschedule):
			h.logger.Warn("PATCH /consultations/{id}/reschedule - Cannot reschedule: consultation_id=%d", consultationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotReschedule)

		case errors.Is(err, rescheduleConsultation.ErrInvalidDate):
			h.logger.Warn("PATCH /consultations/{id}/reschedule - Invalid date: consultation_id=%d", consultationID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, rescheduleConsultation.ErrNotBusinessDay):
			h.logger.Warn("PATCH /consultations/{id}/reschedule - Not a business day: consultation_id=%d", consultationID)
			handlers.RespondBadRequest(w, msgNotBusinessDay)

		case errors.Is(err, rescheduleConsultation.ErrDateTooFarInFuture):
			h.logger.Warn("PATCH /consultations/{id}/reschedule - Date too far in future: consultation_id=%d", consultationID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleConsultation.ErrInvalidTimeSlot):
			h.logger.Warn("PATCH /consultations/{id}/reschedule - Invalid time slot: consultation_id=%d", consultationID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rescheduleConsultation.ErrTooLateToBook):
			h.logger.Warn("PATCH /consultations/{id}/reschedule - Too late to book: consultation_id=%d", consultationID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleConsultation.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /consultations/{id}/reschedule - Slot not available: consultation_id=%d", consultationID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		default:
			h.logger.Error("PATCH /consultations/{id}/reschedule - Failed to reschedule: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("PATCH /consultations/{id}/reschedule - Consultation rescheduled successfully: consultation_id=%d, date=%s, time=%s",
		result.ID, response.ScheduledDate, response.StartTime)
	handlers.RespondJSON(w, http.StatusOK, response)
}
