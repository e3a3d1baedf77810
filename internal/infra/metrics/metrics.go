// Package metrics exposes account lifecycle counters through Prometheus.
package metrics

import (
	"strconv"

	"accounts/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "accounts"

// NewRegistry creates the registry served on the metrics endpoint, preloaded
// with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

type accountMetrics struct {
	usersCreated   *prometheus.CounterVec
	loginAttempts  *prometheus.CounterVec
	businessesGone prometheus.Counter
	cascadedUsers  prometheus.Counter
}

// NewAccountMetrics registers the account counters on reg.
func NewAccountMetrics(reg *prometheus.Registry) service.AccountMetrics {
	m := &accountMetrics{
		usersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Accounts created, by kind (user or superuser).",
		}, []string{"kind"}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Admin console login attempts, by outcome.",
		}, []string{"success"}),
		businessesGone: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "businesses_deleted_total",
			Help:      "Businesses deleted.",
		}),
		cascadedUsers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_cascade_deleted_total",
			Help:      "Users removed because their business was deleted.",
		}),
	}

	reg.MustRegister(m.usersCreated, m.loginAttempts, m.businessesGone, m.cascadedUsers)

	return m
}

func (m *accountMetrics) UserCreated(kind string) {
	m.usersCreated.WithLabelValues(kind).Inc()
}

func (m *accountMetrics) LoginAttempt(success bool) {
	m.loginAttempts.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func (m *accountMetrics) BusinessDeleted(cascadedUsers int64) {
	m.businessesGone.Inc()
	m.cascadedUsers.Add(float64(cascadedUsers))
}
