package consultations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	consultationRepo "github.com/NovaCoreVectra/NCV-ConsultationService/internal/infra/storage/consultation"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/service/consultations/models"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/ptr"
)

type fakeRepo struct {
	byID    *domain.Consultation
	byIDErr error
	list    []*domain.Consultation
	listErr error

	cancelledID     int64
	cancelledStatus domain.ConsultationStatus
	cancelledReason string

	updatedID     int64
	updatedStatus domain.ConsultationStatus
}

func (r *fakeRepo) Create(_ context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	return c, nil
}

func (r *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Consultation, error) {
	if r.byIDErr != nil {
		return nil, r.byIDErr
	}
	return r.byID, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, _ string, _ *domain.ConsultationStatus) ([]*domain.Consultation, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.list, nil
}

func (r *fakeRepo) GetWithFilter(_ context.Context, _ domain.ConsultationsFilter) ([]*domain.Consultation, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.list, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.ConsultationStatus) error {
	r.updatedID = id
	r.updatedStatus = status
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, status domain.ConsultationStatus, reason string) error {
	r.cancelledID = id
	r.cancelledStatus = status
	r.cancelledReason = reason
	return nil
}

type fakeCalendarClient struct {
	deletedUID string
	deleteErr  error
}

func (c *fakeCalendarClient) DeleteEvent(_ context.Context, uid string) error {
	c.deletedUID = uid
	return c.deleteErr
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func storedConsultation() *domain.Consultation {
	return &domain.Consultation{
		ID:              42,
		FirstName:       "John",
		LastName:        "Doe",
		Email:           "john.doe@acme.com",
		Company:         "Acme Inc",
		Timezone:        "UTC",
		ScheduledDate:   time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		EventUID:        ptr.Ptr("event-uid"),
	}
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := NewService(&fakeRepo{byID: storedConsultation()}, &fakeCalendarClient{}, &nopLogger{})

		resp, err := svc.GetByID(context.Background(), 42)
		require.NoError(t, err)

		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "2025-06-16", resp.ScheduledDate)
		assert.Equal(t, "14:00", resp.StartTime)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(&fakeRepo{byIDErr: consultationRepo.ErrConsultationNotFound}, &fakeCalendarClient{}, &nopLogger{})

		_, err := svc.GetByID(context.Background(), 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConsultationNotFound)
	})

	t.Run("repo error", func(t *testing.T) {
		svc := NewService(&fakeRepo{byIDErr: errors.New("connection refused")}, &fakeCalendarClient{}, &nopLogger{})

		_, err := svc.GetByID(context.Background(), 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestCancel(t *testing.T) {
	t.Run("by client", func(t *testing.T) {
		repo := &fakeRepo{byID: storedConsultation()}
		calendar := &fakeCalendarClient{}
		svc := NewService(repo, calendar, &nopLogger{})

		err := svc.Cancel(context.Background(), 42, &models.CancelConsultationRequest{
			CancellationReason: "schedule conflict",
		})
		require.NoError(t, err)

		assert.Equal(t, int64(42), repo.cancelledID)
		assert.Equal(t, domain.StatusCancelledByClient, repo.cancelledStatus)
		assert.Equal(t, "schedule conflict", repo.cancelledReason)

		// Событие удалено у провайдера
		assert.Equal(t, "event-uid", calendar.deletedUID)
	})

	t.Run("by staff", func(t *testing.T) {
		repo := &fakeRepo{byID: storedConsultation()}
		svc := NewService(repo, &fakeCalendarClient{}, &nopLogger{})

		err := svc.Cancel(context.Background(), 42, &models.CancelConsultationRequest{ByStaff: true})
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCancelledByStaff, repo.cancelledStatus)
	})

	t.Run("already cancelled", func(t *testing.T) {
		c := storedConsultation()
		c.Status = domain.StatusCancelledByClient

		svc := NewService(&fakeRepo{byID: c}, &fakeCalendarClient{}, &nopLogger{})

		err := svc.Cancel(context.Background(), 42, &models.CancelConsultationRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		c := storedConsultation()
		c.Status = domain.StatusCompleted

		svc := NewService(&fakeRepo{byID: c}, &fakeCalendarClient{}, &nopLogger{})

		err := svc.Cancel(context.Background(), 42, &models.CancelConsultationRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(&fakeRepo{byIDErr: consultationRepo.ErrConsultationNotFound}, &fakeCalendarClient{}, &nopLogger{})

		err := svc.Cancel(context.Background(), 42, &models.CancelConsultationRequest{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConsultationNotFound)
	})

	t.Run("calendar failure does not fail cancellation", func(t *testing.T) {
		repo := &fakeRepo{byID: storedConsultation()}
		calendar := &fakeCalendarClient{deleteErr: errors.New("provider down")}
		svc := NewService(repo, calendar, &nopLogger{})

		err := svc.Cancel(context.Background(), 42, &models.CancelConsultationRequest{})
		require.NoError(t, err)
		assert.Equal(t, int64(42), repo.cancelledID)
	})

	t.Run("no event uid skips provider call", func(t *testing.T) {
		c := storedConsultation()
		c.EventUID = nil

		calendar := &fakeCalendarClient{}
		svc := NewService(&fakeRepo{byID: c}, calendar, &nopLogger{})

		err := svc.Cancel(context.Background(), 42, &models.CancelConsultationRequest{})
		require.NoError(t, err)
		assert.Empty(t, calendar.deletedUID)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("valid transition", func(t *testing.T) {
		repo := &fakeRepo{byID: storedConsultation()}
		svc := NewService(repo, &fakeCalendarClient{}, &nopLogger{})

		err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "completed"})
		require.NoError(t, err)

		assert.Equal(t, int64(42), repo.updatedID)
		assert.Equal(t, domain.StatusCompleted, repo.updatedStatus)
	})

	t.Run("invalid status", func(t *testing.T) {
		svc := NewService(&fakeRepo{byID: storedConsultation()}, &fakeCalendarClient{}, &nopLogger{})

		err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "unknown"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(&fakeRepo{byIDErr: consultationRepo.ErrConsultationNotFound}, &fakeCalendarClient{}, &nopLogger{})

		err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "completed"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConsultationNotFound)
	})
}

func TestGetClientConsultations(t *testing.T) {
	t.Run("returns history", func(t *testing.T) {
		repo := &fakeRepo{list: []*domain.Consultation{storedConsultation()}}
		svc := NewService(repo, &fakeCalendarClient{}, &nopLogger{})

		resp, err := svc.GetClientConsultations(context.Background(), &models.GetClientConsultationsRequest{
			Email: "john.doe@acme.com",
		})
		require.NoError(t, err)
		require.Len(t, resp.Consultations, 1)
		assert.Equal(t, int64(42), resp.Consultations[0].ID)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		svc := NewService(&fakeRepo{}, &fakeCalendarClient{}, &nopLogger{})

		_, err := svc.GetClientConsultations(context.Background(), &models.GetClientConsultationsRequest{
			Email:  "john.doe@acme.com",
			Status: ptr.Ptr("bogus"),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestListConsultations(t *testing.T) {
	repo := &fakeRepo{list: []*domain.Consultation{storedConsultation()}}
	svc := NewService(repo, &fakeCalendarClient{}, &nopLogger{})

	resp, err := svc.ListConsultations(context.Background(), &models.ListConsultationsRequest{
		Status:          ptr.Ptr("confirmed"),
		IncludeInactive: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Consultations, 1)
}
