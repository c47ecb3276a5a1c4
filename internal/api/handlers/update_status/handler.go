package update_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations/models"
)

const (
	msgInvalidConsultationID = "invalid consultation ID"
	msgInvalidRequestBody    = "invalid request body"
	msgInvalidStatus         = "invalid consultation status"
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

// Handle PATCH /api/v1/consultations/{consultationId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем consultationId из URL
	consultationIDStr := vars["consultationId"]
	consultationID, err := strconv.ParseInt(consultationIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /consultations/{id}/status - Invalid consultation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConsultationID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /consultations/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем сервис
	if err := h.service.UpdateStatus(r.Context(), consultationID, &req); err != nil {
		switch {
		case errors.Is(err, consultations.ErrConsultationNotFound):
			h.logger.Warn("PATCH /consultations/{id}/status - Consultation not found: consultation_id=%d", consultationID)
			handlers.RespondNotFound(w, msgConsultationNotFound)

		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("PATCH /consultations/{id}/status - Invalid status: consultation_id=%d, status=%s",
				consultationID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /consultations/{id}/status - Failed to update status: consultation_id=%d, error=%v",
				consultationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /consultations/{id}/status - Status updated successfully: consultation_id=%d, status=%s",
		consultationID, req.Status)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
