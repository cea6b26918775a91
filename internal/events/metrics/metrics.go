package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EventsUpserted prometheus.Counter
	EventsCleared  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		EventsUpserted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_events_upserted_total",
			Help: "Number of calendar events written.",
		}),
		EventsCleared: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_events_cleared_total",
			Help: "Number of calendar events removed by writing an empty record.",
		}),
	}
}

func (m *Metrics) IncrementUpserted() { m.EventsUpserted.Inc() }
func (m *Metrics) IncrementCleared()  { m.EventsCleared.Inc() }
