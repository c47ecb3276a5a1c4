package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers"
	getAvailableSlots "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "date query parameter is required"
	msgInvalidDate      = "invalid date format, expected YYYY-MM-DD"
	msgDateInPast       = "date must not be in the past"
	msgDateTooFarFuture = "date is too far in the future"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(dateStr)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /available-slots - Date in past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /available-slots - Date too far in future: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFarFuture)

		default:
			h.logger.Error("GET /available-slots - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /available-slots - Slots retrieved successfully: date=%s, slots_count=%d",
		dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
