package submit_consultation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookConsultation "github.com/NovaCoreVectra/NCV-ConsultationService/internal/usecase/book_consultation"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

type fakeUseCase struct {
	gotReq *bookConsultation.Request
	resp   *bookConsultation.Response
	err    error
}

func (uc *fakeUseCase) Execute(_ context.Context, req *bookConsultation.Request) (*bookConsultation.Response, error) {
	uc.gotReq = req
	if uc.err != nil {
		return nil, uc.err
	}
	return uc.resp, nil
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func successResponse() *bookConsultation.Response {
	created := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	return &bookConsultation.Response{
		ID:              42,
		FirstName:       "John",
		LastName:        "Doe",
		Email:           "john.doe@acme.com",
		Company:         "Acme Inc",
		ScheduledDate:   time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("14:00"),
		DurationMinutes: 60,
		Status:          "confirmed",
		Timezone:        "UTC",
		EventUID:        "event-uid",
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(uc, &nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/consultations", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: successResponse()}

	body := `{
		"firstName": "John",
		"lastName": "Doe",
		"email": "john.doe@acme.com",
		"company": "Acme Inc",
		"preferredDate": "2025-06-16",
		"preferredTime": "14:00"
	}`

	rec := doRequest(t, uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)

	// Дата и время распарсены в модель use case
	require.NotNil(t, uc.gotReq.PreferredDate)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), *uc.gotReq.PreferredDate)
	require.NotNil(t, uc.gotReq.PreferredTime)
	assert.Equal(t, types.TimeString("14:00"), *uc.gotReq.PreferredTime)

	var resp ConsultationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2025-06-16", resp.ScheduledDate)
	assert.Equal(t, "14:00", resp.StartTime)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "event-uid", resp.EventUID)
}

func TestHandle_NoPreferences(t *testing.T) {
	uc := &fakeUseCase{resp: successResponse()}

	body := `{"firstName":"John","lastName":"Doe","email":"john.doe@acme.com","company":"Acme Inc"}`

	rec := doRequest(t, uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, uc.gotReq.PreferredDate)
	assert.Nil(t, uc.gotReq.PreferredTime)
}

func TestHandle_BadRequestBodies(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"firstName": `},
		{name: "unknown field", body: `{"firstName":"John","surname":"Doe"}`},
		{name: "bad date format", body: `{"firstName":"John","lastName":"Doe","email":"a@b.c","company":"Acme","preferredDate":"16.06.2025"}`},
		{name: "bad time format", body: `{"firstName":"John","lastName":"Doe","email":"a@b.c","company":"Acme","preferredTime":"2pm"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{resp: successResponse()}, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	body := `{"firstName":"John","lastName":"Doe","email":"john.doe@acme.com","company":"Acme Inc"}`

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: bookConsultation.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "invalid date", err: bookConsultation.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "not business day", err: bookConsultation.ErrNotBusinessDay, wantStatus: http.StatusBadRequest},
		{name: "too far in future", err: bookConsultation.ErrDateTooFarInFuture, wantStatus: http.StatusBadRequest},
		{name: "invalid time slot", err: bookConsultation.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest},
		{name: "too late to book", err: bookConsultation.ErrTooLateToBook, wantStatus: http.StatusBadRequest},
		{name: "slot not available", err: bookConsultation.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "internal", err: bookConsultation.ErrInternal, wantStatus: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}
