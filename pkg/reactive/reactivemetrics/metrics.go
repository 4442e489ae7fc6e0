// Package reactivemetrics exports binding recomputations as Prometheus
// metrics.
package reactivemetrics

import (
	"fmt"
	"time"

	"github.com/ib-77/validated/pkg/reactive"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts and times the recomputations of reactive bindings.
type Recorder struct {
	recomputations *prometheus.CounterVec
	duration       *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		recomputations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "reactive",
				Name:      "recomputations_total",
				Help:      "Total number of binding recomputations",
			},
			[]string{"binding"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "reactive",
				Name:      "recompute_duration_seconds",
				Help:      "Duration of binding recomputations",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"binding"},
		),
	}

	for _, c := range []prometheus.Collector{r.recomputations, r.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register reactive metrics: %w", err)
		}
	}
	return r, nil
}

// Hooks returns hooks to pass to reactive.WithHooks.
func (r *Recorder) Hooks() reactive.Hooks {
	return reactive.Hooks{
		OnRecompute: r.observe,
	}
}

func (r *Recorder) observe(name string, elapsed time.Duration) {
	r.recomputations.WithLabelValues(name).Inc()
	r.duration.WithLabelValues(name).Observe(elapsed.Seconds())
}
