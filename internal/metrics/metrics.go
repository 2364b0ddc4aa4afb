// Package metrics exposes Prometheus metrics for catalog operations,
// view invalidations and the rendered page cache.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrlokans/bookshelf/internal/views"
)

// Recorder owns the bookshelf collectors and the registry they live in.
type Recorder struct {
	registry *prometheus.Registry

	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	invalidations     *prometheus.CounterVec
	pageCache         *prometheus.CounterVec
}

// NewRecorder registers every collector on a fresh registry, together with
// the Go runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookshelf_catalog_operations_total",
			Help: "Catalog operations by operation and outcome",
		}, []string{"operation", "outcome"}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bookshelf_catalog_operation_duration_seconds",
			Help:    "Catalog operation latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		invalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookshelf_view_invalidations_total",
			Help: "View invalidations by key family",
		}, []string{"family"}),
		pageCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookshelf_page_cache_requests_total",
			Help: "Rendered page cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveOperation records one catalog operation.
func (r *Recorder) ObserveOperation(op, outcome string, elapsed time.Duration) {
	r.operations.WithLabelValues(op, outcome).Inc()
	r.operationDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ViewInvalidated counts an invalidation; it never fails.
func (r *Recorder) ViewInvalidated(_ context.Context, key string) error {
	r.invalidations.WithLabelValues(views.Family(key)).Inc()
	return nil
}

func (r *Recorder) CacheHit()  { r.pageCache.WithLabelValues("hit").Inc() }
func (r *Recorder) CacheMiss() { r.pageCache.WithLabelValues("miss").Inc() }

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
