package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder captures handler outcomes.
type Recorder interface {
	IncRequests(status int)
}

// Noop implements Recorder and generator.LatencyObserver without emitting anything.
type Noop struct{}

func (Noop) IncRequests(int)                        {}
func (Noop) ObserveGeneration(time.Duration, error) {}

// Prom implements Recorder backed by Prometheus collectors.
type Prom struct {
	requests   *prometheus.CounterVec
	generation *prometheus.HistogramVec
	gatherer   prometheus.Gatherer
}

// NewProm registers the collectors with reg. A nil reg uses a fresh registry.
func NewProm(namespace string, reg *prometheus.Registry) *Prom {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	p := &Prom{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Handled invocations by response status",
		}, []string{"status"}),
		generation: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_seconds",
			Help:      "Model invocation latency",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"result"}),
		gatherer: reg,
	}
	reg.MustRegister(p.requests, p.generation)
	return p
}

func (p *Prom) IncRequests(status int) {
	p.requests.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (p *Prom) ObserveGeneration(d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.generation.WithLabelValues(result).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (p *Prom) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}
