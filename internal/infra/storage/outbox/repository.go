package outbox

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/dbmetrics"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/psqlbuilder"
)

// invitationColumns колонки таблицы invitation_outbox в порядке сканирования
var invitationColumns = []string{
	"id",
	"consultation_id",
	"recipient_email",
	"recipient_name",
	"subject",
	"body_text",
	"ics_payload",
	"status",
	"attempts",
	"last_error",
	"sent_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий outbox приглашений
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория outbox
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue добавляет приглашение в очередь на отправку
// Вызывается в одной транзакции с созданием консультации,
// чтобы заявка без приглашения была невозможна
func (r *Repository) Enqueue(ctx context.Context, inv *domain.Invitation) (*domain.Invitation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("invitation_outbox").
		Columns(
			"consultation_id",
			"recipient_email",
			"recipient_name",
			"subject",
			"body_text",
			"ics_payload",
			"status",
		).
		Values(
			inv.ConsultationID,
			inv.RecipientEmail,
			inv.RecipientName,
			inv.Subject,
			inv.BodyText,
			inv.ICSPayload,
			domain.InvitationPending,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inv.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Enqueue - execute insert: %v", ErrExecQuery, err)
	}

	inv.Status = domain.InvitationPending
	inv.CreatedAt = createdAt.Time
	inv.UpdatedAt = updatedAt.Time

	return inv, nil
}

// GetPending возвращает до limit неотправленных приглашений
// с числом попыток меньше maxAttempts, старые первыми
// Строки блокируются с SKIP LOCKED, чтобы несколько инстансов воркера
// не забирали одни и те же записи
func (r *Repository) GetPending(ctx context.Context, limit, maxAttempts int) ([]*domain.Invitation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(invitationColumns...).
		From("invitation_outbox").
		Where(squirrel.NotEq{"status": domain.InvitationSent}).
		Where(squirrel.Lt{"attempts": maxAttempts}).
		OrderBy("created_at ASC").
		Limit(uint64(limit))

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	invitations := make([]*domain.Invitation, 0)
	for rows.Next() {
		var inv domain.Invitation
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&inv.ID,
			&inv.ConsultationID,
			&inv.RecipientEmail,
			&inv.RecipientName,
			&inv.Subject,
			&inv.BodyText,
			&inv.ICSPayload,
			&inv.Status,
			&inv.Attempts,
			&inv.LastError,
			&inv.SentAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetPending - scan row: %v", ErrScanRow, err)
		}

		inv.CreatedAt = createdAt.Time
		inv.UpdatedAt = updatedAt.Time

		invitations = append(invitations, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPending - rows error: %v", ErrScanRow, err)
	}

	return invitations, nil
}

// MarkSent помечает приглашение отправленным
func (r *Repository) MarkSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invitation_outbox").
		Set("status", domain.InvitationSent).
		Set("sent_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkSent")
}

// MarkFailed фиксирует неудачную попытку отправки
func (r *Repository) MarkFailed(ctx context.Context, id int64, sendErr string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("invitation_outbox").
		Set("status", domain.InvitationFailed).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("last_error", sendErr).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "MarkFailed")
}

// execExpectingRow выполняет update и проверяет, что затронута ровно одна строка
func (r *Repository) execExpectingRow(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrInvitationNotFound
	}

	return nil
}
