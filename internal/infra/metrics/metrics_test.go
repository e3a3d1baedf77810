package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAccountMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAccountMetrics(reg).(*accountMetrics)

	m.UserCreated("user")
	m.UserCreated("user")
	m.UserCreated("superuser")
	m.LoginAttempt(true)
	m.LoginAttempt(false)
	m.LoginAttempt(false)
	m.BusinessDeleted(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.usersCreated.WithLabelValues("user")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.usersCreated.WithLabelValues("superuser")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("true")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.businessesGone))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.cascadedUsers))
}

func TestNewRegistry_GathersRuntimeMetrics(t *testing.T) {
	reg := NewRegistry()
	NewAccountMetrics(reg).UserCreated("user")

	families, err := reg.Gather()
	assert.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["go_goroutines"])
	assert.True(t, names["accounts_users_created_total"])
}
