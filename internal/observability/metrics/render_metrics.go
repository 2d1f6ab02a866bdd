package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RenderMetrics tracks the document render pipeline.
type RenderMetrics struct {
	renderDuration *prometheus.HistogramVec
	rendered       *prometheus.CounterVec
	documentBytes  prometheus.Histogram
	cacheHits      *prometheus.CounterVec
}

var (
	renderMetricsOnce sync.Once
	renderMetrics     *RenderMetrics
)

// Render returns the process-wide render metrics, registering them on first
// use.
func Render(cfg Config) *RenderMetrics {
	renderMetricsOnce.Do(func() {
		renderMetrics = newRenderMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return renderMetrics
}

// ResetRenderMetricsForTest clears the singleton between test registries.
func ResetRenderMetricsForTest() {
	renderMetricsOnce = sync.Once{}
	renderMetrics = nil
}

func newRenderMetrics(registerer prometheus.Registerer, cfg Config) *RenderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	constLabels := prometheus.Labels{
		"service": cfg.serviceName(),
		"env":     cfg.environment(),
	}

	renderDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:        "invoicepro_render_duration_seconds",
			Help:        "Time spent producing one invoice document.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			ConstLabels: constLabels,
		},
		[]string{"result"}, // success | invalid_input | failed
	)

	rendered := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "invoicepro_documents_rendered_total",
			Help:        "Total invoice documents rendered.",
			ConstLabels: constLabels,
		},
		[]string{"result"},
	)

	documentBytes := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:        "invoicepro_document_bytes",
			Help:        "Size of rendered invoice documents.",
			Buckets:     prometheus.ExponentialBuckets(1024, 4, 8),
			ConstLabels: constLabels,
		},
	)

	cacheHits := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name:        "invoicepro_render_cache_total",
			Help:        "Document cache lookups by outcome.",
			ConstLabels: constLabels,
		},
		[]string{"outcome"}, // hit | miss
	)

	registerer.MustRegister(renderDuration, rendered, documentBytes, cacheHits)

	return &RenderMetrics{
		renderDuration: renderDuration,
		rendered:       rendered,
		documentBytes:  documentBytes,
		cacheHits:      cacheHits,
	}
}

// ObserveRender records one completed render attempt.
func (m *RenderMetrics) ObserveRender(result string, elapsed time.Duration, size int) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(result).Observe(elapsed.Seconds())
	m.rendered.WithLabelValues(result).Inc()
	if size > 0 {
		m.documentBytes.Observe(float64(size))
	}
}

// ObserveCache records a document cache lookup.
func (m *RenderMetrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cacheHits.WithLabelValues(outcome).Inc()
}
