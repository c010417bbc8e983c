package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts audio operations by outcome. A nil *Metrics is valid and records nothing.
type Metrics struct {
	ops *prometheus.CounterVec
}

// NewMetrics registers the audio operation counter on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "audio_operations_total",
				Help: "Audio list/latest/upload/delete operations by result.",
			},
			[]string{"op", "result"},
		),
	}
	if err := reg.Register(m.ops); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(op string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.ops.WithLabelValues(op, result).Inc()
}
