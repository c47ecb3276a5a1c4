package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics контейнер Prometheus метрик сервиса
// Регистрирует метрики в дефолтном регистре, который отдается promhttp.Handler
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec

	dbPoolOpenConnections *prometheus.GaugeVec
	dbPoolInUse           *prometheus.GaugeVec
	dbPoolIdle            *prometheus.GaugeVec

	invitationsProcessed *prometheus.CounterVec
}

// New создает и регистрирует набор метрик сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"operation"}),

		dbPoolOpenConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open connections in the pool.",
			ConstLabels: constLabels,
		}, nil),

		dbPoolInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of connections currently in use.",
			ConstLabels: constLabels,
		}, nil),

		dbPoolIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle connections in the pool.",
			ConstLabels: constLabels,
		}, nil),

		invitationsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "invitations_processed_total",
			Help:        "Total number of processed invitation outbox entries.",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный SQL запрос
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики connection pool
func (m *Metrics) SetDBPoolStats(stats sql.DBStats) {
	m.dbPoolOpenConnections.WithLabelValues().Set(float64(stats.OpenConnections))
	m.dbPoolInUse.WithLabelValues().Set(float64(stats.InUse))
	m.dbPoolIdle.WithLabelValues().Set(float64(stats.Idle))
}

// IncInvitationProcessed фиксирует результат обработки приглашения (sent / failed / skipped)
func (m *Metrics) IncInvitationProcessed(result string) {
	m.invitationsProcessed.WithLabelValues(result).Inc()
}
