package get_client_consultations

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/gorilla/mux"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/api/handlers"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations/models"
)

const (
	msgInvalidEmail  = "invalid client email"
	msgInvalidStatus = "invalid consultation status"
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

// Handle GET /api/v1/clients/{email}/consultations
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем email из URL
	email := vars["email"]
	if _, err := mail.ParseAddress(email); err != nil {
		h.logger.Warn("GET /clients/{email}/consultations - Invalid email: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmail)
		return
	}

	req := &models.GetClientConsultationsRequest{
		Email: email,
	}

	// Извлекаем status из query параметров (опционально)
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	// Вызываем сервис
	result, err := h.service.GetClientConsultations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, consultations.ErrInvalidInput):
			h.logger.Warn("GET /clients/{email}/consultations - Invalid status: email=%s", email)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /clients/{email}/consultations - Failed to get consultations: email=%s, error=%v",
				email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clients/{email}/consultations - Consultations retrieved successfully: email=%s, count=%d",
		email, len(result.Consultations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
