package list_consultations

import (
	"net/url"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations/models"
)

// ToServiceRequest собирает фильтр из query параметров
// Поддерживаются: email, startDate, endDate, status, includeInactive
func ToServiceRequest(query url.Values) (*models.ListConsultationsRequest, error) {
	req := &models.ListConsultationsRequest{}

	if email := query.Get("email"); email != "" {
		req.Email = &email
	}

	if startDateStr := query.Get("startDate"); startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr := query.Get("endDate"); endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}
