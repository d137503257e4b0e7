package falconapi

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors updated by an Engine.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the engine collectors and registers them with reg.
// Collectors already registered by another engine are shared.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "falcon_operations_total",
			Help: "Number of Falcon operations by result",
		},
		[]string{"op", "result"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "falcon_operation_duration_seconds",
			Help:    "Duration of Falcon operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	m := &Metrics{operations: operations, duration: duration}
	if reg != nil {
		m.operations = registerOrReuse(reg, operations)
		m.duration = registerOrReuse(reg, duration)
	}
	return m
}

func registerOrReuse[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

// observe records one operation. A nil receiver is a no-op.
func (m *Metrics) observe(op Op, start time.Time, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(string(op), result).Inc()
	m.duration.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
}

const (
	resultOK       = "ok"
	resultError    = "error"
	resultRejected = "rejected"
)
