package submit_consultation

import (
	"errors"
	"net/http"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers"
	bookConsultation "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/book_consultation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid preferred date or time, expected YYYY-MM-DD and HH:MM"
	msgInvalidInput       = "required fields are missing or invalid"
	msgInvalidDate        = "consultation date is invalid"
	msgNotBusinessDay     = "consultations are held Monday through Friday only"
	msgDateTooFar         = "consultation date is too far in the future"
	msgInvalidTimeSlot    = "requested time is outside business hours or off the slot grid"
	msgTooLateToBook      = "too late to book this slot"
	msgSlotNotAvailable   = "requested time slot is not available"
)

type Handler struct {
	useCase BookConsultationUseCase
	logger  Logger
}

func NewHandler(useCase BookConsultationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/consultations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /consultations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /consultations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, bookConsultation.ErrInvalidInput):
			h.logger.Warn("POST /consultations - Invalid input: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookConsultation.ErrInvalidDate):
			h.logger.Warn("POST /consultations - Invalid date: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, bookConsultation.ErrNotBusinessDay):
			h.logger.Warn("POST /consultations - Not a business day: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgNotBusinessDay)

		case errors.Is(err, bookConsultation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /consultations - Date too far in future: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, bookConsultation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /consultations - Invalid time slot: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, bookConsultation.ErrTooLateToBook):
			h.logger.Warn("POST /consultations - Too late to book: email=%s", req.Email)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, bookConsultation.ErrSlotNotAvailable):
			h.logger.Warn("POST /consultations - Slot not available: email=%s", req.Email)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		default:
			h.logger.Error("POST /consultations - Failed to book consultation: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /consultations - Consultation booked successfully: consultation_id=%d, email=%s, date=%s, time=%s",
		result.ID, result.Email, response.ScheduledDate, response.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
