package cancel_consultation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations"
)

const (
	msgInvalidConsultationID = "invalid consultation ID"
	msgInvalidRequestBody    = "invalid request body"
	msgReasonTooLong         = "cancellation reason is too long"
	msgConsultationNotFound  = "consultation not found"
	msgCannotCancel          = "consultation cannot be cancelled in its current status"
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

// Handle PATCH /api/v1/consultations/{consultationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем consultationId из URL
	consultationIDStr := vars["consultationId"]
	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /consultations/{id}/cancel - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	var req CancelConsultationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /consultations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		h.logger.Warn("PATCH /consultations/{id}/cancel - Reason too long: consultation_id=%d", consultationID)
		handlers.RespondBadRequest(w, msgReasonTooLong)
		return
	}

	// Вызываем сервис
	if err := h.service.Cancel(r.Context(), consultationID, req.ToServiceRequest()); err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("PATCH /consultations/{id}/cancel - Consultation not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgConsultationNotFound)

		case errors.Is(err, consultations.ErrCannotCancel):
			h.logger.Warn("PATCH /consultations/{id}/cancel - Cannot cancel: consultation_id=%d", consultationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /consultations/{id}/cancel - Failed to cancel consultation: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /consultations/{id}/cancel - Consultation cancelled successfully: consultation_id=%d", consultationID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
