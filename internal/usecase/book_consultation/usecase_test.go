package book_consultation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/calendarservice"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/ptr"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

type fakeConsultationRepo struct {
	existing  []*domain.Consultation
	getErr    error
	createErr error
	created   *domain.Consultation
}

func (r *fakeConsultationRepo) Create(_ context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	saved := *c
	saved.ID = 42
	saved.CreatedAt = time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)
	saved.UpdatedAt = saved.CreatedAt
	r.created = &saved
	return &saved, nil
}

func (r *fakeConsultationRepo) GetWithFilter(_ context.Context, _ domain.ConsultationsFilter) ([]*domain.Consultation, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.existing, nil
}

type fakeOutboxRepo struct {
	enqueued   *domain.Invitation
	enqueueErr error
}

func (r *fakeOutboxRepo) Enqueue(_ context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	if r.enqueueErr != nil {
		return nil, r.enqueueErr
	}
	saved := *inv
	saved.ID = 7
	r.enqueued = &saved
	return &saved, nil
}

type fakeCalendarClient struct {
	busy           []calendarservice.BusyInterval
	busyErr        error
	createEventErr error
	createdEvent   *calendarservice.EventPayload
}

func (c *fakeCalendarClient) GetBusyIntervalsWithGracefulDegradation(_ context.Context, _ time.Time) ([]calendarservice.BusyInterval, error) {
	return c.busy, c.busyErr
}

func (c *fakeCalendarClient) CreateEvent(_ context.Context, event *calendarservice.EventPayload) error {
	c.createdEvent = event
	return c.createEventErr
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (p *fakeTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func testPolicy() domain.SchedulePolicy {
	policy := domain.DefaultSchedulePolicy()
	policy.Location = time.UTC
	return policy
}

func testOrganizer() domain.EventOrganizer {
	return domain.EventOrganizer{
		Name:     "NovaCoreVectra Consulting",
		Email:    "consultations@novacorevectra.net",
		Location: "Video call",
	}
}

// newTestUseCase собирает use case на фейках с фиксированным временем
func newTestUseCase(
	repo *fakeConsultationRepo,
	outbox *fakeOutboxRepo,
	calendar *fakeCalendarClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(repo, outbox, calendar, &fakeTxManager{}, testPolicy(), testOrganizer(), &nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func validRequest() *Request {
	// 2025-06-16 — понедельник
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	return &Request{
		FirstName:     "John",
		LastName:      "Doe",
		Email:         "john.doe@acme.com",
		Company:       "Acme Inc",
		PreferredDate: &date,
		PreferredTime: ptr.Ptr(types.TimeString("14:00")),
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeConsultationRepo{}
	outbox := &fakeOutboxRepo{}
	calendar := &fakeCalendarClient{}
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	uc := newTestUseCase(repo, outbox, calendar, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "John", resp.FirstName)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.NotEmpty(t, resp.EventUID)

	// Таймзона по умолчанию берется из политики
	assert.Equal(t, "UTC", resp.Timezone)

	// Приглашение поставлено в outbox в той же транзакции
	require.NotNil(t, outbox.enqueued)
	assert.Equal(t, int64(42), outbox.enqueued.ConsultationID)
	assert.Equal(t, "john.doe@acme.com", outbox.enqueued.RecipientEmail)
	assert.Equal(t, "John Doe", outbox.enqueued.RecipientName)
	assert.Contains(t, outbox.enqueued.ICSPayload, "BEGIN:VCALENDAR")
	assert.Contains(t, outbox.enqueued.ICSPayload, "DTSTART:20250616T140000Z")

	// Событие создано у провайдера
	require.NotNil(t, calendar.createdEvent)
	assert.Equal(t, resp.EventUID, calendar.createdEvent.UID)
	assert.Equal(t, "2025-06-16T14:00:00Z", calendar.createdEvent.Start)
	assert.Equal(t, "2025-06-16T15:00:00Z", calendar.createdEvent.End)
}

func TestExecute_DefaultsToNextBusinessDay(t *testing.T) {
	repo := &fakeConsultationRepo{}
	outbox := &fakeOutboxRepo{}
	calendar := &fakeCalendarClient{}

	// Пятница: следующий рабочий день — понедельник
	now := time.Date(2025, 6, 13, 10, 0, 0, 0, time.UTC)
	uc := newTestUseCase(repo, outbox, calendar, now)

	req := validRequest()
	req.PreferredDate = nil
	req.PreferredTime = nil

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), resp.ScheduledDate)
	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
}

func TestExecute_ValidationErrors(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "missing first name",
			mutate:  func(req *Request) { req.FirstName = "  " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing company",
			mutate:  func(req *Request) { req.Company = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "invalid email",
			mutate:  func(req *Request) { req.Email = "not-an-email" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown timezone",
			mutate:  func(req *Request) { req.Timezone = "Mars/Olympus" },
			wantErr: ErrInvalidInput,
		},
		{
			name: "date in the past",
			mutate: func(req *Request) {
				past := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
				req.PreferredDate = &past
			},
			wantErr: ErrInvalidDate,
		},
		{
			name: "weekend date",
			mutate: func(req *Request) {
				saturday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
				req.PreferredDate = &saturday
			},
			wantErr: ErrNotBusinessDay,
		},
		{
			name: "date beyond advance limit",
			mutate: func(req *Request) {
				far := time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC)
				req.PreferredDate = &far
			},
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name: "time off the slot grid",
			mutate: func(req *Request) {
				req.PreferredTime = ptr.Ptr(types.TimeString("14:15"))
			},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name: "time outside business hours",
			mutate: func(req *Request) {
				req.PreferredTime = ptr.Ptr(types.TimeString("08:00"))
			},
			wantErr: ErrInvalidTimeSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeConsultationRepo{}, &fakeOutboxRepo{}, &fakeCalendarClient{}, now)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_TooLateToBookSameDay(t *testing.T) {
	// Сегодня 13:30, минимальный notice 120 минут: слот 14:00 уже недоступен
	now := time.Date(2025, 6, 16, 13, 30, 0, 0, time.UTC)
	uc := newTestUseCase(&fakeConsultationRepo{}, &fakeOutboxRepo{}, &fakeCalendarClient{}, now)

	req := validRequest()

	_, err := uc.Execute(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLateToBook)

	// Слот 16:00 того же дня еще доступен
	req.PreferredTime = ptr.Ptr(types.TimeString("16:00"))
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_SlotNotAvailable(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	existing := &domain.Consultation{
		ID:              1,
		Status:          domain.StatusConfirmed,
		StartTime:       "14:00",
		DurationMinutes: 60,
	}

	repo := &fakeConsultationRepo{existing: []*domain.Consultation{existing}}
	uc := newTestUseCase(repo, &fakeOutboxRepo{}, &fakeCalendarClient{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_OverlapIsStrict(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	// Существующая встреча 14:00-15:00: слот 15:00 свободен, границы соприкасаются
	existing := &domain.Consultation{
		ID:              1,
		Status:          domain.StatusConfirmed,
		StartTime:       "14:00",
		DurationMinutes: 60,
	}

	repo := &fakeConsultationRepo{existing: []*domain.Consultation{existing}}
	uc := newTestUseCase(repo, &fakeOutboxRepo{}, &fakeCalendarClient{}, now)

	req := validRequest()
	req.PreferredTime = ptr.Ptr(types.TimeString("15:00"))

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_CancelledConsultationFreesSlot(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	cancelled := &domain.Consultation{
		ID:              1,
		Status:          domain.StatusCancelledByClient,
		StartTime:       "14:00",
		DurationMinutes: 60,
	}

	repo := &fakeConsultationRepo{existing: []*domain.Consultation{cancelled}}
	uc := newTestUseCase(repo, &fakeOutboxRepo{}, &fakeCalendarClient{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_CalendarBusyIntervalBlocksSlot(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	calendar := &fakeCalendarClient{
		busy: []calendarservice.BusyInterval{
			{Start: "14:30", End: "15:30"},
		},
	}
	uc := newTestUseCase(&fakeConsultationRepo{}, &fakeOutboxRepo{}, calendar, now)

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CalendarDegradationFallsBackToLocal(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	calendar := &fakeCalendarClient{busyErr: errors.New("provider timeout")}
	uc := newTestUseCase(&fakeConsultationRepo{}, &fakeOutboxRepo{}, calendar, now)

	// Провайдер недоступен: решает только локальная занятость
	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_CalendarNotFoundIsFatal(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	calendar := &fakeCalendarClient{busyErr: calendarservice.ErrCalendarNotFound}
	uc := newTestUseCase(&fakeConsultationRepo{}, &fakeOutboxRepo{}, calendar, now)

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_ProviderEventFailureDoesNotFailBooking(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	calendar := &fakeCalendarClient{createEventErr: errors.New("provider down")}
	uc := newTestUseCase(&fakeConsultationRepo{}, &fakeOutboxRepo{}, calendar, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestExecute_RepoErrorWrapsInternal(t *testing.T) {
	now := time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

	repo := &fakeConsultationRepo{getErr: errors.New("connection refused")}
	uc := newTestUseCase(repo, &fakeOutboxRepo{}, &fakeCalendarClient{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)
}
