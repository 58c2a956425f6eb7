package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	chatTurnsTotal    *prometheus.CounterVec
	outOfScopeTotal   *prometheus.CounterVec
	followUpTotal     *prometheus.CounterVec
	escalationsTotal  *prometheus.CounterVec
	retrievedChunks   *prometheus.HistogramVec
	pipelineDuration  *prometheus.HistogramVec
	retrievalHitTotal *prometheus.CounterVec
	noContextTotal    *prometheus.CounterVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ama",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ama",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "ama",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	chatTurnsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ama",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Total answered chat turns by outcome.",
		},
		[]string{"service", "outcome"},
	)
	outOfScopeTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ama",
			Subsystem: "chat",
			Name:      "out_of_scope_total",
			Help:      "Total turns rejected by the topic guard.",
		},
		[]string{"service"},
	)
	followUpTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ama",
			Subsystem: "chat",
			Name:      "follow_up_total",
			Help:      "Total turns answered with follow-up augmentation.",
		},
		[]string{"service"},
	)
	escalationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ama",
			Subsystem: "chat",
			Name:      "escalations_total",
			Help:      "Total turns that matched major-repair keywords.",
		},
		[]string{"service"},
	)
	retrievedChunks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ama",
			Subsystem: "retrieval",
			Name:      "chunks",
			Help:      "Distribution of retrieved chunks per answered turn.",
			Buckets:   []float64{0, 1, 2, 3, 4, 6, 8},
		},
		[]string{"service"},
	)
	pipelineDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ama",
			Subsystem: "chat",
			Name:      "duration_seconds",
			Help:      "Answer pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	retrievalHitTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ama",
			Subsystem: "retrieval",
			Name:      "hit_total",
			Help:      "Total turns with at least one non-empty retrieved chunk.",
		},
		[]string{"service"},
	)
	noContextTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ama",
			Subsystem: "retrieval",
			Name:      "no_context_total",
			Help:      "Total turns answered without retrieved context.",
		},
		[]string{"service"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		chatTurnsTotal,
		outOfScopeTotal,
		followUpTotal,
		escalationsTotal,
		retrievedChunks,
		pipelineDuration,
		retrievalHitTotal,
		noContextTotal,
	)

	return &HTTPServerMetrics{
		registry:          registry,
		requestTotal:      requestTotal,
		requestDuration:   requestDuration,
		requestInFlight:   requestInFlight,
		chatTurnsTotal:    chatTurnsTotal,
		outOfScopeTotal:   outOfScopeTotal,
		followUpTotal:     followUpTotal,
		escalationsTotal:  escalationsTotal,
		retrievedChunks:   retrievedChunks,
		pipelineDuration:  pipelineDuration,
		retrievalHitTotal: retrievalHitTotal,
		noContextTotal:    noContextTotal,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			r.URL.Path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}

func (m *HTTPServerMetrics) RecordChatTurn(service, outcome string, sourcesWithText int, duration time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.chatTurnsTotal.WithLabelValues(service, outcome).Inc()
	m.pipelineDuration.WithLabelValues(service).Observe(duration.Seconds())
	m.retrievedChunks.WithLabelValues(service).Observe(float64(sourcesWithText))

	if sourcesWithText > 0 {
		m.retrievalHitTotal.WithLabelValues(service).Inc()
		return
	}
	m.noContextTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordOutOfScope(service string) {
	m.outOfScopeTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordFollowUp(service string) {
	m.followUpTotal.WithLabelValues(service).Inc()
}

func (m *HTTPServerMetrics) RecordEscalation(service string) {
	m.escalationsTotal.WithLabelValues(service).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
