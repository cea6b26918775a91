package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	NotesCreated prometheus.Counter
	NotesDeleted prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		NotesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_notes_created_total",
			Help: "Number of notes created.",
		}),
		NotesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_notes_deleted_total",
			Help: "Number of notes deleted.",
		}),
	}
}

func (m *Metrics) IncrementCreated() { m.NotesCreated.Inc() }
func (m *Metrics) IncrementDeleted() { m.NotesDeleted.Inc() }
