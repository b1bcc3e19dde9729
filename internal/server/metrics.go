package server

import (
	"context"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/techimbue/website/internal/post"
	"github.com/techimbue/website/internal/render"
)

// metrics counts rendered pages and times feed loads.
type metrics struct {
	registry     *prom.Registry
	renders      *prom.CounterVec
	feedDuration *prom.HistogramVec
}

func newMetrics() *metrics {
	reg := prom.NewRegistry()
	m := &metrics{
		registry: reg,
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "website",
			Name:      "page_renders_total",
			Help:      "Rendered blog pages by page and outcome",
		}, []string{"page", "outcome"}),
		feedDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "website",
			Name:      "feed_load_duration_seconds",
			Help:      "Duration of posts feed loads",
			Buckets:   prom.DefBuckets,
		}, []string{"result"}),
	}
	reg.MustRegister(m.renders, m.feedDuration)
	return m
}

// instrument wraps load so every call is timed.
func (m *metrics) instrument(load render.LoadFunc) render.LoadFunc {
	return func(ctx context.Context) ([]post.Post, error) {
		start := time.Now()
		posts, err := load(ctx)
		result := "ok"
		if err != nil {
			result = "error"
		}
		m.feedDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		return posts, err
	}
}

func (m *metrics) rendered(page, outcome string) {
	m.renders.WithLabelValues(page, outcome).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// listOutcome names the state of a list view for the renders counter.
func listOutcome(v render.ListView) string {
	switch {
	case v.Failed:
		return "failed"
	case v.Empty:
		return "empty"
	default:
		return "ok"
	}
}
