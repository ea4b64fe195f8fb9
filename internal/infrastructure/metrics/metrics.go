package metrics

import (
	"strconv"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/infrastructure/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrderMetrics содержит метрики жизненного цикла заказов
type OrderMetrics struct {
	OrdersCreatedTotal         *prometheus.CounterVec
	OrdersCreatedQuantityTotal *prometheus.CounterVec

	// Переходы статусов
	StatusTransitionsTotal *prometheus.CounterVec
	VersionConflictsTotal  prometheus.Counter

	// Время от создания до финального статуса
	OrderProcessingDuration *prometheus.HistogramVec

	// Ошибки
	OrderErrorsTotal *prometheus.CounterVec
}

// NewOrderMetrics registers the order collectors on reg.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	factory := promauto.With(reg)
	return &OrderMetrics{
		OrdersCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Number of created orders",
			},
			[]string{"order_type"},
		),
		OrdersCreatedQuantityTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_quantity_total",
				Help: "Sum of quantities of created orders",
			},
			[]string{"order_type"},
		),
		StatusTransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_status_transitions_total",
				Help: "Committed order status transitions",
			},
			[]string{"from", "to"},
		),
		VersionConflictsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "order_version_conflicts_total",
				Help: "Status updates rejected by the version check",
			},
		),
		OrderProcessingDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "order_processing_duration_seconds",
				Help:    "Time from creation to a terminal status",
				Buckets: []float64{1, 10, 60, 300, 900, 3600, 21600, 86400},
			},
			[]string{"final_status"},
		),
		OrderErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_errors_total",
				Help: "Failed order operations by kind",
			},
			[]string{"operation", "kind"},
		),
	}
}

func (m *OrderMetrics) RecordOrderCreated(orderType string, quantity int64) {
	m.OrdersCreatedTotal.WithLabelValues(orderType).Inc()
	m.OrdersCreatedQuantityTotal.WithLabelValues(orderType).Add(float64(quantity))
}

func (m *OrderMetrics) RecordStatusTransition(from, to string) {
	m.StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *OrderMetrics) RecordVersionConflict() {
	m.VersionConflictsTotal.Inc()
}

func (m *OrderMetrics) RecordOrderProcessingDuration(finalStatus string, durationSeconds float64) {
	m.OrderProcessingDuration.WithLabelValues(finalStatus).Observe(durationSeconds)
}

func (m *OrderMetrics) RecordError(operation, kind string) {
	m.OrderErrorsTotal.WithLabelValues(operation, kind).Inc()
}

// CacheMetrics implements cache.Recorder.
type CacheMetrics struct {
	LookupsTotal    *prometheus.CounterVec
	MissesTotal     *prometheus.CounterVec
	DirtyMarksTotal *prometheus.CounterVec
	ErrorsTotal     *prometheus.CounterVec
	ReseedsTotal    *prometheus.CounterVec
}

func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	factory := promauto.With(reg)
	return &CacheMetrics{
		LookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_cache_lookups_total",
				Help: "Cache view lookups by outcome",
			},
			[]string{"view", "result"},
		),
		MissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_cache_misses_total",
				Help: "Cache view misses by reason",
			},
			[]string{"view", "reason"},
		),
		DirtyMarksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_cache_dirty_marks_total",
				Help: "Times a view was marked dirty",
			},
			[]string{"view"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_cache_errors_total",
				Help: "Failed cache operations",
			},
			[]string{"op"},
		),
		ReseedsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_cache_reseeds_total",
				Help: "View reseeds from the order store",
			},
			[]string{"view", "result"},
		),
	}
}

func (m *CacheMetrics) CacheHit(view cache.ViewKind) {
	m.LookupsTotal.WithLabelValues(string(view), "hit").Inc()
}

func (m *CacheMetrics) CacheMiss(view cache.ViewKind, reason string) {
	m.LookupsTotal.WithLabelValues(string(view), "miss").Inc()
	m.MissesTotal.WithLabelValues(string(view), reason).Inc()
}

func (m *CacheMetrics) DirtyMarked(view cache.ViewKind) {
	m.DirtyMarksTotal.WithLabelValues(string(view)).Inc()
}

func (m *CacheMetrics) CacheError(op string) {
	m.ErrorsTotal.WithLabelValues(op).Inc()
}

func (m *CacheMetrics) RecordReseed(view cache.ViewKind, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.ReseedsTotal.WithLabelValues(string(view), result).Inc()
}

// HTTPMetrics - метрики входящих HTTP запросов
type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)
	return &HTTPMetrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// ObserveRequest takes the route template, not the raw path, to keep
// label cardinality bounded.
func (m *HTTPMetrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
