package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks how often place resolution is answered by each tier of the
// lookup pipeline.
type Metrics struct {
	CacheHits      prometheus.Counter
	StoreHits      prometheus.Counter
	GeocoderCalls  prometheus.Counter
	GeocoderErrors prometheus.Counter
	Misses         prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_places_cache_hits_total",
			Help: "Place lookups answered from the in-process cache.",
		}),
		StoreHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_places_store_hits_total",
			Help: "Place lookups answered from the persisted store.",
		}),
		GeocoderCalls: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_places_geocoder_calls_total",
			Help: "Lookups forwarded to the external geocoder.",
		}),
		GeocoderErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_places_geocoder_errors_total",
			Help: "External geocoder calls that failed.",
		}),
		Misses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_places_misses_total",
			Help: "Place lookups that no tier could answer.",
		}),
	}
}

func (m *Metrics) IncrementCacheHits()      { m.CacheHits.Inc() }
func (m *Metrics) IncrementStoreHits()      { m.StoreHits.Inc() }
func (m *Metrics) IncrementGeocoderCalls()  { m.GeocoderCalls.Inc() }
func (m *Metrics) IncrementGeocoderErrors() { m.GeocoderErrors.Inc() }
func (m *Metrics) IncrementMisses()         { m.Misses.Inc() }
