package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	buildDuration prom.Histogram
	articles      *prom.CounterVec
	buildOutcome  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on
// a fresh registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	pr := &PrometheusRecorder{registry: prom.NewRegistry()}

	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "stratawiki",
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual build stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "stratawiki",
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.articles = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "stratawiki",
		Name:      "articles_total",
		Help:      "Article candidates by outcome",
	}, []string{"outcome"})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "stratawiki",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})

	pr.registry.MustRegister(pr.stageDuration, pr.buildDuration, pr.articles, pr.buildOutcome)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddArticles(outcome string, n int) {
	p.articles.WithLabelValues(outcome).Add(float64(n))
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

// Handler serves this recorder's registry over HTTP.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
