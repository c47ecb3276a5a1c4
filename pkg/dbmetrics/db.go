package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/NovaCoreVectra/NCV-ConsultationService/pkg/metrics"
)

// DBExecutor интерфейс для выполнения запросов
// Реализуется *sql.DB, *sql.Tx, *dbmetrics.DB и *dbmetrics.Tx
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor интерфейс транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// defaultPoolStatsInterval интервал сбора метрик connection pool
const defaultPoolStatsInterval = 15 * time.Second

// DB обёртка над *sql.DB, собирающая метрики по каждому запросу
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// Wrap оборачивает *sql.DB сбором метрик запросов
func Wrap(db *sql.DB, m *metrics.Metrics) *DB {
	return &DB{db: db, metrics: m}
}

// WrapWithDefault оборачивает *sql.DB и запускает фоновый сбор метрик
// connection pool с дефолтным интервалом; сбор останавливается закрытием stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go wrapped.collectPoolStats(stopCh, defaultPoolStatsInterval)
	return wrapped
}

// ExecContext выполняет запрос без результата
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := d.db.ExecContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(queryOperation(query), err, time.Since(start))
	return result, err
}

// QueryContext выполняет запрос с множественным результатом
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(queryOperation(query), err, time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос с единственной строкой результата
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.metrics.ObserveDBQuery(queryOperation(query), nil, time.Since(start))
	return row
}

// BeginTx начинает транзакцию; запросы внутри неё также попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, metrics: d.metrics}, nil
}

// collectPoolStats периодически публикует статистику connection pool
func (d *DB) collectPoolStats(stopCh <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			d.metrics.SetDBPoolStats(d.db.Stats())
		}
	}
}

// Tx обёртка над *sql.Tx с метриками
type Tx struct {
	tx      *sql.Tx
	metrics *metrics.Metrics
}

// ExecContext выполняет запрос в транзакции
func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := t.tx.ExecContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(queryOperation(query), err, time.Since(start))
	return result, err
}

// QueryContext выполняет запрос в транзакции
func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(queryOperation(query), err, time.Since(start))
	return rows, err
}

// QueryRowContext выполняет запрос в транзакции
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.metrics.ObserveDBQuery(queryOperation(query), nil, time.Since(start))
	return row
}

// Commit фиксирует транзакцию
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback откатывает транзакцию
func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

// queryOperation извлекает тип операции из SQL запроса (select/insert/update/delete)
func queryOperation(query string) string {
	trimmed := strings.TrimSpace(query)
	if idx := strings.IndexByte(trimmed, ' '); idx > 0 {
		trimmed = trimmed[:idx]
	}
	op := strings.ToLower(trimmed)
	switch op {
	case "select", "insert", "update", "delete":
		return op
	default:
		return "other"
	}
}
