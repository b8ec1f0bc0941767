package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	AppointmentsCreated *prometheus.CounterVec
	BookingConflicts    *prometheus.CounterVec
	SlotsCache          *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном registry
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBInUseConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		AppointmentsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_created_total",
			Help: "Appointments created, split by promo code usage",
		}, []string{"service", "promo"}),

		BookingConflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Rejected bookings due to a taken slot or an exhausted promo code",
		}, []string{"service", "reason"}),

		SlotsCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "free_slots_cache_total",
			Help: "Occupied-slot cache lookups",
		}, []string{"service", "result"}),
	}
}

// ObserveHTTPRequest фиксирует один обработанный HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(service, method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(service, method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(service, method, route).Observe(elapsed.Seconds())
}

// ObserveDBQuery фиксирует один запрос к БД
func (m *Metrics) ObserveDBQuery(service, operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(service, operation).Observe(elapsed.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(service, operation).Inc()
	}
}

// SetDBPoolStats обновляет gauges пула соединений
func (m *Metrics) SetDBPoolStats(service string, open, inUse, idle int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(service).Set(float64(open))
	m.DBInUseConnections.WithLabelValues(service).Set(float64(inUse))
	m.DBIdleConnections.WithLabelValues(service).Set(float64(idle))
}

func (m *Metrics) AppointmentCreated(withPromo bool) {
	if m == nil {
		return
	}
	label := "without"
	if withPromo {
		label = "with"
	}
	m.AppointmentsCreated.WithLabelValues(m.serviceName, label).Inc()
}

// BookingConflict reason: slot_taken | promo_exhausted
func (m *Metrics) BookingConflict(reason string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(m.serviceName, reason).Inc()
}

func (m *Metrics) SlotsCacheLookup(hit bool) {
	if m == nil {
		return
	}
	label := "miss"
	if hit {
		label = "hit"
	}
	m.SlotsCache.WithLabelValues(m.serviceName, label).Inc()
}
