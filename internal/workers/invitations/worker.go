package invitations

import (
	"context"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/integrations/mailservice"
)

// Worker фоновый воркер доставки приглашений
// Периодически опрашивает outbox и отправляет накопившиеся приглашения
// через почтовый релей. Несколько инстансов могут работать параллельно:
// выборка в транзакции использует FOR UPDATE SKIP LOCKED
type Worker struct {
	outboxRepo  OutboxRepository
	mailClient  MailServiceClient
	txManager   TransactionManager
	metrics     Metrics
	logger      Logger
	interval    time.Duration
	batchSize   int
	maxAttempts int
}

// NewWorker создает новый экземпляр воркера доставки приглашений
func NewWorker(
	outboxRepo OutboxRepository,
	mailClient MailServiceClient,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	interval time.Duration,
	batchSize int,
	maxAttempts int,
) *Worker {
	return &Worker{
		outboxRepo:  outboxRepo,
		mailClient:  mailClient,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
	}
}

// Run запускает цикл обработки outbox
// Блокируется до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("InvitationWorker: started, interval=%s, batchSize=%d, maxAttempts=%d",
		w.interval, w.batchSize, w.maxAttempts)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("InvitationWorker: stopped")
			return
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				w.logger.Error("InvitationWorker: batch processing failed: %v", err)
			}
		}
	}
}

// processBatch забирает и отправляет порцию неотправленных приглашений
// Выборка и обновление статусов выполняются в одной транзакции,
// чтобы конкурентные инстансы не обрабатывали одни и те же записи
func (w *Worker) processBatch(ctx context.Context) error {
	return w.txManager.Do(ctx, func(txCtx context.Context) error {
		pending, err := w.outboxRepo.GetPending(txCtx, w.batchSize, w.maxAttempts)
		if err != nil {
			return err
		}

		if len(pending) == 0 {
			return nil
		}

		w.logger.Info("InvitationWorker: processing %d pending invitations", len(pending))

		for _, inv := range pending {
			w.deliver(txCtx, inv)
		}

		return nil
	})
}

// deliver отправляет одно приглашение и фиксирует результат
func (w *Worker) deliver(ctx context.Context, inv *domain.Invitation) {
	msg := &mailservice.Message{
		ToEmail:  inv.RecipientEmail,
		ToName:   inv.RecipientName,
		Subject:  inv.Subject,
		TextBody: inv.BodyText,
		ICS:      inv.ICSPayload,
	}

	if err := w.mailClient.Send(ctx, msg); err != nil {
		w.logger.Error("InvitationWorker: failed to send invitation id=%d (attempt %d/%d): %v",
			inv.ID, inv.Attempts+1, w.maxAttempts, err)

		if markErr := w.outboxRepo.MarkFailed(ctx, inv.ID, err.Error()); markErr != nil {
			w.logger.Error("InvitationWorker: failed to mark invitation id=%d as failed: %v", inv.ID, markErr)
		}
		if w.metrics != nil {
			w.metrics.IncInvitationProcessed("failed")
		}
		return
	}

	if err := w.outboxRepo.MarkSent(ctx, inv.ID); err != nil {
		w.logger.Error("InvitationWorker: failed to mark invitation id=%d as sent: %v", inv.ID, err)
		return
	}

	w.logger.Info("InvitationWorker: invitation id=%d sent to %s", inv.ID, inv.RecipientEmail)
	if w.metrics != nil {
		w.metrics.IncInvitationProcessed("sent")
	}
}
