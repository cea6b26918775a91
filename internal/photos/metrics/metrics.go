package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PhotosCreated prometheus.Counter
	PhotosDeleted prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		PhotosCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_photos_created_total",
			Help: "Number of photo records created.",
		}),
		PhotosDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_photos_deleted_total",
			Help: "Number of photo records deleted.",
		}),
	}
}

func (m *Metrics) IncrementCreated() { m.PhotosCreated.Inc() }
func (m *Metrics) IncrementDeleted() { m.PhotosDeleted.Inc() }
