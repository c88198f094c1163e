package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBErrorsTotal   *prometheus.CounterVec
	DBOpenConns     *prometheus.GaugeVec
	DBInUseConns    *prometheus.GaugeVec
	DBIdleConns     *prometheus.GaugeVec
	DBWaitCount     *prometheus.GaugeVec

	BusinessEventsTotal      *prometheus.CounterVec
	NotificationFailureTotal *prometheus.CounterVec
	TxRetriesTotal           *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре (отдаётся через promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_errors_total",
			Help:        "Total number of database errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConns: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		BusinessEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_events_total",
			Help:        "Scheduling engine operations by event and outcome",
			ConstLabels: constLabels,
		}, []string{"event", "outcome"}),
		NotificationFailureTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Best-effort notifications that failed to dispatch",
			ConstLabels: constLabels,
		}, []string{"category"}),
		TxRetriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Serializable transactions retried after a serialization failure",
			ConstLabels: constLabels,
		}, []string{"isolation"}),
	}
}

// IncBusinessEvent учитывает результат бизнес-операции (например event=cancel_booking outcome=fee_waived)
func (m *Metrics) IncBusinessEvent(event, outcome string) {
	if m == nil {
		return
	}
	m.BusinessEventsTotal.WithLabelValues(event, outcome).Inc()
}

// IncNotificationFailure учитывает неудачную отправку уведомления
func (m *Metrics) IncNotificationFailure(category string) {
	if m == nil {
		return
	}
	m.NotificationFailureTotal.WithLabelValues(category).Inc()
}

// IncTxRetry учитывает повтор транзакции
func (m *Metrics) IncTxRetry(isolation string) {
	if m == nil {
		return
	}
	m.TxRetriesTotal.WithLabelValues(isolation).Inc()
}

// ObserveHTTP записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
	if err != nil {
		m.DBErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// ObservePool записывает статистику пула соединений
func (m *Metrics) ObservePool(dbName string, stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBOpenConns.WithLabelValues(dbName).Set(float64(stats.OpenConnections))
	m.DBInUseConns.WithLabelValues(dbName).Set(float64(stats.InUse))
	m.DBIdleConns.WithLabelValues(dbName).Set(float64(stats.Idle))
	m.DBWaitCount.WithLabelValues(dbName).Set(float64(stats.WaitCount))
}
