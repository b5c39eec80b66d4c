package observability

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/automata/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	Runs        *prometheus.CounterVec
	Steps       *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Validations *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_runs_total",
				Help: "Total number of completed runs",
			},
			[]string{"kind", "accepted", "reason"},
		),
		Steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_steps_total",
				Help: "Total number of simulation steps",
			},
			[]string{"kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "automata_run_duration_seconds",
				Help:    "Duration of simulation runs",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"kind"},
		),
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automata_validation_failures_total",
				Help: "Machines or inputs refused before simulation",
			},
			[]string{"check"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Steps, m.Duration, m.Validations)
	}
	return m
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(_ context.Context, e *domain.StepEvent) {
			m.Steps.WithLabelValues(string(e.Kind)).Inc()
		},
		OnRunEnd: func(_ context.Context, e *domain.RunEvent) {
			kind := string(e.Kind)
			m.Duration.WithLabelValues(kind).Observe(e.Duration.Seconds())
			if e.Result == nil {
				return
			}
			v := e.Result.Verdict
			m.Runs.WithLabelValues(kind, strconv.FormatBool(v.Accepted), string(v.Reason)).Inc()
		},
		OnValidationFailed: func(_ context.Context, e *domain.ValidationEvent) {
			m.Validations.WithLabelValues(e.Check).Inc()
		},
	}
}
