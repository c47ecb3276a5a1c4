package consultation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/NovaCoreVectra/NCV-ConsultationService/internal/domain"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/dbmetrics"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/psqlbuilder"
	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/types"
)

// consultationColumns колонки таблицы consultations в порядке сканирования
var consultationColumns = []string{
	"id",
	"first_name",
	"last_name",
	"email",
	"company",
	"job_title",
	"industry",
	"project_type",
	"message",
	"timezone",
	"scheduled_date",
	"start_time",
	"duration_minutes",
	"status",
	"event_uid",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с консультациями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория консультаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую консультацию
// Если в контексте передана активная транзакция, использует её
// Транзакция нужна при создании с проверкой доступности слота
// (для предотвращения race condition между параллельными заявками)
func (r *Repository) Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("consultations").
		Columns(
			"first_name",
			"last_name",
			"email",
			"company",
			"job_title",
			"industry",
			"project_type",
			"message",
			"timezone",
			"scheduled_date",
			"start_time",
			"duration_minutes",
			"status",
			"event_uid",
		).
		Values(
			c.FirstName,
			c.LastName,
			c.Email,
			c.Company,
			c.JobTitle,
			c.Industry,
			c.ProjectType,
			c.Message,
			c.Timezone,
			c.ScheduledDate,
			c.StartTime,
			c.DurationMinutes,
			c.Status,
			c.EventUID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает консультацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(consultationColumns...).
		From("consultations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	c, err := scanConsultation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrConsultationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan consultation: %v", ErrScanRow, err)
	}

	return c, nil
}

// GetByEmail получает консультации клиента по email
// Опционально фильтрует по статусу
func (r *Repository) GetByEmail(ctx context.Context, email string, status *domain.ConsultationStatus) ([]*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(consultationColumns...).
		From("consultations").
		Where(squirrel.Eq{"email": email}).
		OrderBy("scheduled_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanConsultations(rows)
}

// GetWithFilter получает консультации с гибкой фильтрацией
// Поддерживает фильтрацию по email, периоду, статусу и включению
// неактивных записей (отменённые, no-show)
//
// Для запроса на конкретную дату внутри транзакции добавляется FOR UPDATE -
// этим пользуется создание/перенос консультации для блокировки слота
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.ConsultationsFilter) ([]*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(consultationColumns...).
		From("consultations")

	if filter.Email != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"email": *filter.Email})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if singleDate {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("scheduled_date DESC, start_time DESC")
	}

	// Блокировка строк при проверке доступности слота в транзакции
	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanConsultations(rows)
}

// UpdateStatus обновляет статус консультации
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ConsultationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Cancel отменяет консультацию с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.ConsultationStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Cancel")
}

// Reschedule переносит консультацию на новую дату и время
// Записывает новый UID события календаря
func (r *Repository) Reschedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString, eventUID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("consultations").
		Set("scheduled_date", date).
		Set("start_time", startTime).
		Set("event_uid", eventUID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Reschedule")
}

// execExpectingRow выполняет update и проверяет, что затронута ровно одна строка
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrConsultationNotFound
	}

	return nil
}

// scanConsultations сканирует результаты запроса в слайс консультаций
func (r *Repository) scanConsultations(rows *sql.Rows) ([]*domain.Consultation, error) {
	consultations := make([]*domain.Consultation, 0)

	for rows.Next() {
		c, err := scanConsultation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanConsultations - scan row: %v", ErrScanRow, err)
		}
		consultations = append(consultations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanConsultations - rows error: %v", ErrScanRow, err)
	}

	return consultations, nil
}

// scanConsultation сканирует одну строку через переданную scan функцию
func scanConsultation(scan func(dest ...interface{}) error) (*domain.Consultation, error) {
	var c domain.Consultation
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Company,
		&c.JobTitle,
		&c.Industry,
		&c.ProjectType,
		&c.Message,
		&c.Timezone,
		&c.ScheduledDate,
		&c.StartTime,
		&c.DurationMinutes,
		&c.Status,
		&c.EventUID,
		&c.CancellationReason,
		&c.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return &c, nil
}
