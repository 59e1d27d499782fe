package metrics

import (
	"database/sql"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec
	DBIdle            *prometheus.GaugeVec
	DBWaitCount       *prometheus.GaugeVec

	ReconcileRuns       *prometheus.CounterVec
	ReconcileDuration   *prometheus.HistogramVec
	ReconcileExpired    *prometheus.CounterVec
	ReconcileSkipped    *prometheus.CounterVec
	ReconcileSlotWrites *prometheus.CounterVec
	ReconcileConflicts  *prometheus.CounterVec

	BookingEvents *prometheus.CounterVec
}

// New создает метрики и регистрирует их в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(reg prometheus.Registerer, serviceName string) *Metrics {
	ns := sanitize(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "db_query_errors_total",
			Help:      "Database query errors",
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_open_connections",
			Help:      "Open database connections",
		}, []string{"service"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_in_use_connections",
			Help:      "Database connections in use",
		}, []string{"service"}),
		DBIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_idle_connections",
			Help:      "Idle database connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}, []string{"service"}),

		ReconcileRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reconcile_runs_total",
			Help:      "Reconciliation passes by scope and result",
		}, []string{"scope", "result"}),
		ReconcileDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "reconcile_duration_seconds",
			Help:      "Reconciliation pass latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"scope"}),
		ReconcileExpired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reconcile_expired_total",
			Help:      "Reservations completed by the expiration sub-pass",
		}, []string{"scope"}),
		ReconcileSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reconcile_skipped_total",
			Help:      "Active reservations skipped because their time fields do not parse",
		}, []string{"scope"}),
		ReconcileSlotWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reconcile_slot_writes_total",
			Help:      "Slot status writes performed by the resync sub-pass",
		}, []string{"scope", "status"}),
		ReconcileConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "reconcile_conflicts_total",
			Help:      "Slots referenced by more than one active reservation",
		}, []string{"scope"}),

		BookingEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "booking_events_total",
			Help:      "Booking lifecycle events",
		}, []string{"event"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.ReconcileRuns,
		m.ReconcileDuration,
		m.ReconcileExpired,
		m.ReconcileSkipped,
		m.ReconcileSlotWrites,
		m.ReconcileConflicts,
		m.BookingEvents,
	)

	return m
}

// RecordHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDBQuery фиксирует выполнение запроса к БД
func (m *Metrics) RecordDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(service string, stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.DBInUse.WithLabelValues(service).Set(float64(stats.InUse))
	m.DBIdle.WithLabelValues(service).Set(float64(stats.Idle))
	m.DBWaitCount.WithLabelValues(service).Set(float64(stats.WaitCount))
}

// RecordReconcile фиксирует результат прохода реконсиляции
func (m *Metrics) RecordReconcile(scope string, duration time.Duration, expired, skipped, booked, released, conflicts int, err error) {
	if m == nil {
		return
	}

	result := "ok"
	if err != nil {
		result = "error"
	}

	m.ReconcileRuns.WithLabelValues(scope, result).Inc()
	m.ReconcileDuration.WithLabelValues(scope).Observe(duration.Seconds())
	m.ReconcileExpired.WithLabelValues(scope).Add(float64(expired))
	m.ReconcileSkipped.WithLabelValues(scope).Add(float64(skipped))
	m.ReconcileSlotWrites.WithLabelValues(scope, "booked").Add(float64(booked))
	m.ReconcileSlotWrites.WithLabelValues(scope, "available").Add(float64(released))
	m.ReconcileConflicts.WithLabelValues(scope).Add(float64(conflicts))
}

// RecordBookingEvent фиксирует событие жизненного цикла бронирования
func (m *Metrics) RecordBookingEvent(event string) {
	if m == nil {
		return
	}
	m.BookingEvents.WithLabelValues(event).Inc()
}

func sanitize(name string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(strings.ToLower(name))
}
