package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the auth module.
type Metrics struct {
	UsersCreated prometheus.Counter
	Logins       prometheus.Counter
	LoginsFailed prometheus.Counter
}

// New creates a new Metrics instance with all auth module metrics registered.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_users_created_total",
			Help: "Total number of accounts created",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_logins_total",
			Help: "Total number of successful logins",
		}),
		LoginsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "keepsake_logins_failed_total",
			Help: "Total number of rejected login attempts",
		}),
	}
}

func (m *Metrics) IncrementUsersCreated() { m.UsersCreated.Inc() }
func (m *Metrics) IncrementLogins()       { m.Logins.Inc() }
func (m *Metrics) IncrementLoginsFailed() { m.LoginsFailed.Inc() }
