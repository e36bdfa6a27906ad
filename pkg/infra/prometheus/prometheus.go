package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Inference latency buckets in milliseconds; zero-shot models on CPU
	// routinely take seconds.
	latencyBuckets = []float64{
		10, 25, 50, 100, 250,
		500, 1000, 2500, 5000,
		10000, 30000, 60000,
	}

	StageOutcomes = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustimage_stage_outcomes_total",
			Help: "Classifier stage outcomes (passed, rejected, inconclusive)",
		},
		[]string{"classifier", "outcome"},
	)

	StageLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustimage_stage_latency_ms",
			Help:    "Classifier stage latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"classifier"},
	)

	ModerationJobs = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustimage_moderation_jobs_total",
			Help: "Moderation jobs by result (kept, removed, abandoned, invalid, dropped, coalesced, disabled)",
		},
		[]string{"result"},
	)

	CompensationSteps = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustimage_compensation_steps_total",
			Help: "Compensating step outcomes after an unsafe verdict",
		},
		[]string{"step", "status"},
	)

	LogLinesDropped = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustimage_log_lines_dropped_total",
			Help: "Log lines dropped because an async writer queue was full",
		},
		[]string{"sink"},
	)

	QueueDepth = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "trustimage_moderation_queue_depth",
			Help: "Moderation jobs waiting for a worker",
		},
	)

	ClassifierState = promauto.With(registerer).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trustimage_classifier_state",
			Help: "Lifecycle state per classifier kind, 1 for the current state",
		},
		[]string{"kind", "state"},
	)

	ClassifierInitLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustimage_classifier_init_ms",
			Help:    "Classifier initialization time in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"kind"},
	)

	BreakerTransitions = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustimage_breaker_transitions_total",
			Help: "Circuit breaker state transitions per inference backend",
		},
		[]string{"classifier", "to"},
	)

	HTTPRequests = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustimage_http_requests_total",
			Help: "Admin API requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trustimage_http_latency_ms",
			Help:    "Admin API latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "route"},
	)

	VerdictCache = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustimage_verdict_cache_total",
			Help: "Verdict cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)
)

type MetricsConfig struct {
	EnableLatency    bool // stage and init histograms
	EnableQueueDepth bool // queue gauge, updated on every enqueue
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:    true,
		EnableQueueDepth: true,
	}
}

var Config = DefaultMetricsConfig()

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

// RecordBreakerTransition matches httpx.StateChangeFunc.
func RecordBreakerTransition(name, _, to string) {
	BreakerTransitions.WithLabelValues(name, to).Inc()
}
