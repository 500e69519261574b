package observability

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bracketgen"

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	stageDuration *prometheus.HistogramVec
	stageErrors   *prometheus.CounterVec
	cacheEvents   *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	inFlight      prometheus.Gauge
	rateLimited   *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them with reg.
// Collectors already registered with reg are reused.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	p := &Prometheus{
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"stage", "kind"}),
		stageErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_errors_total",
			Help:      "Failed pipeline stages.",
		}, []string{"stage"}),
		cacheEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache hits, misses and writes.",
		}, []string{"key_type", "event"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the artifact cache.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served.",
		}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"route"}),
	}

	p.stageDuration = register(reg, p.stageDuration)
	p.stageErrors = register(reg, p.stageErrors)
	p.cacheEvents = register(reg, p.cacheEvents)
	p.cacheBytes = register(reg, p.cacheBytes)
	p.requests = register(reg, p.requests)
	p.latency = register(reg, p.latency)
	p.inFlight = register(reg, p.inFlight)
	p.rateLimited = register(reg, p.rateLimited)
	return p
}

// register registers c, or returns the collector already registered under
// the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func (p *Prometheus) observeStage(stage, kind string, d time.Duration, err error) {
	p.stageDuration.WithLabelValues(stage, kind).Observe(d.Seconds())
	if err != nil {
		p.stageErrors.WithLabelValues(stage).Inc()
	}
}

func (p *Prometheus) OnBuildStart(context.Context, string) {}

func (p *Prometheus) OnBuildComplete(_ context.Context, source string, _ int, d time.Duration, err error) {
	p.observeStage("build", source, d, err)
}

func (p *Prometheus) OnLayoutStart(context.Context, string, int) {}

func (p *Prometheus) OnLayoutComplete(_ context.Context, vizType string, d time.Duration, err error) {
	p.observeStage("layout", vizType, d, err)
}

func (p *Prometheus) OnRenderStart(context.Context, []string) {}

func (p *Prometheus) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	p.observeStage("render", strconv.Itoa(len(formats)), d, err)
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.Add(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) { p.inFlight.Inc() }

func (p *Prometheus) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.inFlight.Dec()
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (p *Prometheus) OnRateLimited(_ context.Context, route string) {
	p.rateLimited.WithLabelValues(route).Inc()
}

var (
	_ PipelineHooks = (*Prometheus)(nil)
	_ CacheHooks    = (*Prometheus)(nil)
	_ ServerHooks   = (*Prometheus)(nil)
)
