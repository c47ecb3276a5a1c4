package invitations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/mailservice"
)

type fakeOutboxRepo struct {
	pending []*domain.Invitation
	getErr  error

	sentIDs   []int64
	failedIDs []int64
	lastError string
}

func (r *fakeOutboxRepo) GetPending(_ context.Context, _, _ int) ([]*domain.Invitation, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.pending, nil
}

func (r *fakeOutboxRepo) MarkSent(_ context.Context, id int64) error {
	r.sentIDs = append(r.sentIDs, id)
	return nil
}

func (r *fakeOutboxRepo) MarkFailed(_ context.Context, id int64, sendErr string) error {
	r.failedIDs = append(r.failedIDs, id)
	r.lastError = sendErr
	return nil
}

type fakeMailClient struct {
	sent    []*mailservice.Message
	sendErr error
}

func (c *fakeMailClient) Send(_ context.Context, msg *mailservice.Message) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, msg)
	return nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	results []string
}

func (m *fakeMetrics) IncInvitationProcessed(result string) {
	m.results = append(m.results, result)
}

type nopLogger struct{}

func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  {}
func (l *nopLogger) Error(string, ...interface{}) {}

func invitation(id int64) *domain.Invitation {
	return &domain.Invitation{
		ID:             id,
		ConsultationID: 42,
		RecipientEmail: "john.doe@acme.com",
		RecipientName:  "John Doe",
		Subject:        "Strategy consultation",
		BodyText:       "Details",
		ICSPayload:     "BEGIN:VCALENDAR...",
		Status:         domain.InvitationPending,
	}
}

func newTestWorker(repo *fakeOutboxRepo, mail *fakeMailClient, m *fakeMetrics) *Worker {
	return NewWorker(repo, mail, &fakeTxManager{}, m, &nopLogger{}, time.Second, 20, 5)
}

func TestProcessBatch_DeliversPending(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []*domain.Invitation{invitation(1), invitation(2)}}
	mail := &fakeMailClient{}
	m := &fakeMetrics{}

	w := newTestWorker(repo, mail, m)

	err := w.processBatch(context.Background())
	require.NoError(t, err)

	require.Len(t, mail.sent, 2)
	assert.Equal(t, "john.doe@acme.com", mail.sent[0].ToEmail)
	assert.Equal(t, "John Doe", mail.sent[0].ToName)
	assert.Equal(t, "Strategy consultation", mail.sent[0].Subject)
	assert.Equal(t, "BEGIN:VCALENDAR...", mail.sent[0].ICS)

	assert.Equal(t, []int64{1, 2}, repo.sentIDs)
	assert.Empty(t, repo.failedIDs)
	assert.Equal(t, []string{"sent", "sent"}, m.results)
}

func TestProcessBatch_EmptyOutbox(t *testing.T) {
	repo := &fakeOutboxRepo{}
	mail := &fakeMailClient{}

	w := newTestWorker(repo, mail, &fakeMetrics{})

	require.NoError(t, w.processBatch(context.Background()))
	assert.Empty(t, mail.sent)
	assert.Empty(t, repo.sentIDs)
}

func TestProcessBatch_SendFailureMarksFailed(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []*domain.Invitation{invitation(1)}}
	mail := &fakeMailClient{sendErr: errors.New("relay unavailable")}
	m := &fakeMetrics{}

	w := newTestWorker(repo, mail, m)

	err := w.processBatch(context.Background())
	require.NoError(t, err)

	assert.Empty(t, repo.sentIDs)
	assert.Equal(t, []int64{1}, repo.failedIDs)
	assert.Contains(t, repo.lastError, "relay unavailable")
	assert.Equal(t, []string{"failed"}, m.results)
}

func TestProcessBatch_GetPendingErrorPropagates(t *testing.T) {
	repo := &fakeOutboxRepo{getErr: errors.New("connection refused")}

	w := newTestWorker(repo, &fakeMailClient{}, &fakeMetrics{})

	err := w.processBatch(context.Background())
	require.Error(t, err)
}

func TestProcessBatch_NilMetrics(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []*domain.Invitation{invitation(1)}}

	w := NewWorker(repo, &fakeMailClient{}, &fakeTxManager{}, nil, &nopLogger{}, time.Second, 20, 5)

	require.NotPanics(t, func() {
		_ = w.processBatch(context.Background())
	})
	assert.Equal(t, []int64{1}, repo.sentIDs)
}

func TestInvitation_CanRetry(t *testing.T) {
	inv := invitation(1)
	inv.Attempts = 4
	assert.True(t, inv.CanRetry(5))

	inv.Attempts = 5
	assert.False(t, inv.CanRetry(5))

	inv.Attempts = 0
	inv.Status = domain.InvitationSent
	assert.False(t, inv.CanRetry(5))
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := &fakeOutboxRepo{pending: []*domain.Invitation{invitation(1)}}
	mail := &fakeMailClient{}

	w := NewWorker(repo, mail, &fakeTxManager{}, &fakeMetrics{}, &nopLogger{}, 10*time.Millisecond, 20, 5)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	// Даем воркеру сделать хотя бы один проход
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	assert.NotEmpty(t, mail.sent)
}
