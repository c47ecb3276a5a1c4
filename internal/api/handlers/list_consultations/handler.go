package list_consultations

import (
	"errors"
	"net/http"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations"
)

const (
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgInvalidFilter = "invalid filter parameters"
)

type Handler struct {
	service ConsultationsService
	logger  Logger
}

func NewHandler(service ConsultationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/consultations
// Query params: email, startDate, endDate, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Собираем фильтр из query параметров
	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /consultations - Invalid date in filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем сервис
	result, err := h.service.ListConsultations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("GET /consultations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /consultations - Failed to list consultations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultations - Consultations listed successfully: count=%d", len(result.Consultations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
