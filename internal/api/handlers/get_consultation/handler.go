package get_consultation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations"
)

const (
	msgInvalidConsultationID = "invalid consultation ID"
	msgConsultationNotFound  = "consultation not found"
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

// Handle GET /api/v1/consultations/{consultationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем consultationId из URL
	consultationIDStr := vars["consultationId"]
	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /consultations/{id} - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	// Вызываем сервис
	result, err := h.service.GetByID(r.Context(), consultationID)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("GET /consultations/{id} - Consultation not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgConsultationNotFound)

		default:
			h.logger.Error("GET /consultations/{id} - Failed to get consultation: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /consultations/{id} - Consultation retrieved successfully: consultation_id=%d", consultationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
