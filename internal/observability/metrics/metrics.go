package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	Timeout                  Outcome       = "timeout"
	Skipped                  Outcome       = "skipped"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 90}

// Collectors are created eagerly so that recording works before Init (e.g. in
// tests and one-shot commands). Init only registers and serves them.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	chainClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chain_client_latency_seconds",
			Help:    "Histogram of chain client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"poller", "status"},
	)

	roundProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "round_processing_duration_seconds",
			Help:    "Round processing duration in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"trigger", "status"},
	)

	queueAddErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_add_error_count",
			Help: "The total number of round jobs rejected by the processing queue",
		},
	)

	queueJobTimeoutCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_job_timeout_count",
			Help: "The total number of round jobs abandoned after the processing timeout",
		},
	)

	queueDepthGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "queue_depth",
			Help: "Number of round jobs waiting in the processing queue",
		},
	)

	lastProcessedRoundGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "last_processed_round",
			Help: "Last round persisted as the current round",
		},
	)

	finalizedHeadHeightGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "finalized_head_height",
			Help: "Last value of finalized head height received",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)
)

// Init initializes the metrics package.
func Init(metricsAddr string) {
	once.Do(func() {
		initMetricsRouter(metricsAddr)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsAddr string) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics registers the Prometheus metrics.
func registerMetrics() {
	prometheus.MustRegister(
		clientRequestDurationHistogram,
		chainClientLatency,
		pollerDurationHistogram,
		roundProcessingDuration,
		queueAddErrorCounter,
		queueJobTimeoutCounter,
		queueDepthGauge,
		lastProcessedRoundGauge,
		finalizedHeadHeightGauge,
		dbLatency,
	)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordChainClientLatency(d time.Duration, method string, failure bool) {
	chainClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordPollerDuration(d time.Duration, poller string, failure bool) {
	pollerDurationHistogram.WithLabelValues(poller, outcome(failure).String()).Observe(d.Seconds())
}

func RecordRoundProcessingDuration(d time.Duration, trigger string, status Outcome) {
	roundProcessingDuration.WithLabelValues(trigger, status.String()).Observe(d.Seconds())
}

func RecordFinalizedHeadHeight(height uint64) {
	finalizedHeadHeightGauge.Set(float64(height))
}

func RecordLastProcessedRound(round uint32) {
	lastProcessedRoundGauge.Set(float64(round))
}

func RecordQueueDepth(depth int) {
	queueDepthGauge.Set(float64(depth))
}

func RecordQueueJobTimeout() {
	queueJobTimeoutCounter.Inc()
}

func RecordQueueAddError() {
	queueAddErrorCounter.Inc()
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}
