package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TimersCreated prometheus.Counter
	TimersDeleted prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		TimersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_timers_created_total",
			Help: "Number of timers created.",
		}),
		TimersDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_timers_deleted_total",
			Help: "Number of timers deleted.",
		}),
	}
}

func (m *Metrics) IncrementCreated() { m.TimersCreated.Inc() }
func (m *Metrics) IncrementDeleted() { m.TimersDeleted.Inc() }
