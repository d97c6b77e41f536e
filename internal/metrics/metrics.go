// Package metrics exports Prometheus metrics for running schedulers.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/tui-shooter/internal/engine"
	"github.com/vovakirdan/tui-shooter/internal/entity"
	"github.com/vovakirdan/tui-shooter/internal/loop"
)

const namespace = "shooter"

// Metrics holds the collectors shared by every scheduler in the process.
type Metrics struct {
	registry *prometheus.Registry

	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	entities     *prometheus.GaugeVec
	rejections   *prometheus.CounterVec
	events       *prometheus.CounterVec
	lastScore    prometheus.Gauge
	sessions     prometheus.Gauge
}

// New creates the collectors and registers them on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Simulation ticks advanced across all runs.",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent inside one tick.",
			Buckets:   []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025},
		}),
		entities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Live entities by kind, summed over active runs.",
		}, []string{"kind"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "move_rejections_total",
			Help:      "Rejected moves by reason.",
		}, []string{"reason"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Scheduler events by type.",
		}, []string{"event"}),
		lastScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_score",
			Help:      "Final score of the most recently finished run.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Schedulers currently observed.",
		}),
	}

	m.registry.MustRegister(
		m.ticks, m.tickDuration, m.entities, m.rejections, m.events, m.lastScore, m.sessions,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observer returns a loop.Observer for one scheduler. Call Close when the
// scheduler is discarded so its entities stop counting.
func (m *Metrics) Observer() *Observer {
	m.sessions.Inc()
	return &Observer{m: m, last: make(map[entity.Kind]int)}
}

// Observer feeds one scheduler's ticks into the shared collectors.
type Observer struct {
	m *Metrics

	mu     sync.Mutex
	last   map[entity.Kind]int // Entity counts contributed to the gauges
	closed bool
}

var _ loop.Observer = (*Observer)(nil)

// ObserveTick implements loop.Observer.
func (o *Observer) ObserveTick(s loop.TickStats) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}

	o.m.ticks.Inc()
	o.m.tickDuration.Observe(s.Duration.Seconds())
	for _, r := range engine.Reasons {
		if n := s.Rejections[r]; n > 0 {
			o.m.rejections.WithLabelValues(r.String()).Add(float64(n))
		}
	}

	// Gauges are shared, so each observer adds only the change it caused.
	for _, k := range kinds {
		if d := s.Entities[k] - o.last[k]; d != 0 {
			o.m.entities.WithLabelValues(k.String()).Add(float64(d))
		}
		o.last[k] = s.Entities[k]
	}
}

// ObserveEvent implements loop.Observer.
func (o *Observer) ObserveEvent(e loop.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}

	o.m.events.WithLabelValues(loop.EventName(e)).Inc()
	if over, ok := e.(loop.GameOverEvent); ok {
		o.m.lastScore.Set(float64(over.Score))
	}
}

// Close withdraws this observer's entities from the gauges.
// Safe to call multiple times.
func (o *Observer) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	for k, n := range o.last {
		if n != 0 {
			o.m.entities.WithLabelValues(k.String()).Sub(float64(n))
		}
	}
	o.m.sessions.Dec()
}

var kinds = []entity.Kind{entity.KindWall, entity.KindEnemy, entity.KindBullet, entity.KindBonus, entity.KindPlayer}
