package client

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records job activity. A nil *Metrics records nothing.
type Metrics struct {
	polls    *prometheus.CounterVec
	outputs  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the job collectors and registers them on reg. Collectors
// that are already registered are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psapi",
			Name:      "job_polls_total",
			Help:      "Number of job status polls",
		}, []string{"operation"}),
		outputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psapi",
			Name:      "job_outputs_total",
			Help:      "Number of finished job outputs by status",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "psapi",
			Name:      "job_duration_seconds",
			Help:      "Time from job creation until all outputs finished",
			Buckets:   []float64{1, 2, 5, 10, 30, 60, 120, 300},
		}, []string{"operation"}),
	}

	var err error
	if m.polls, err = register(reg, m.polls); err != nil {
		return nil, err
	}
	if m.outputs, err = register(reg, m.outputs); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observePoll(operation Operation) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(string(operation)).Inc()
}

func (m *Metrics) observeDone(operation Operation, outputs []JobOutput, elapsed time.Duration) {
	if m == nil {
		return
	}
	for _, output := range outputs {
		m.outputs.WithLabelValues(string(operation), string(output.Status)).Inc()
	}
	m.duration.WithLabelValues(string(operation)).Observe(elapsed.Seconds())
}
