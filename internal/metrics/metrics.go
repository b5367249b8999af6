// Package metrics exposes card activity as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tartampluch/go-birthday-card/internal/config"
)

// Collector owns a private registry so tests and multiple cards never clash
// with the global default registry. A nil *Collector is a valid no-op.
type Collector struct {
	registry     *prometheus.Registry
	candles      prometheus.Counter
	celebrations prometheus.Counter
	wishes       prometheus.Counter
	particles    prometheus.Gauge
}

// New creates and registers the card metrics.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		candles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Name:      config.MetricCandlesBlown,
			Help:      config.MetricHelpCandles,
		}),
		celebrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Name:      config.MetricCelebrations,
			Help:      config.MetricHelpCelebrate,
		}),
		wishes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: config.MetricsNamespace,
			Name:      config.MetricWishesAdded,
			Help:      config.MetricHelpWishes,
		}),
		particles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: config.MetricsNamespace,
			Name:      config.MetricParticles,
			Help:      config.MetricHelpParticles,
		}),
	}
	c.registry.MustRegister(c.candles, c.celebrations, c.wishes, c.particles)
	return c
}

// CandleBlown counts one extinguished candle.
func (c *Collector) CandleBlown() {
	if c == nil {
		return
	}
	c.candles.Inc()
}

// Celebration counts one confetti run.
func (c *Collector) Celebration() {
	if c == nil {
		return
	}
	c.celebrations.Inc()
}

// WishAdded counts one accepted wish.
func (c *Collector) WishAdded() {
	if c == nil {
		return
	}
	c.wishes.Inc()
}

// SetParticles records the live confetti count.
func (c *Collector) SetParticles(n int) {
	if c == nil {
		return
	}
	c.particles.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
