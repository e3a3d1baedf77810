package impl

import "accounts/internal/domain/service"

// noopMetrics is used when no metrics sink is wired.
type noopMetrics struct{}

func (noopMetrics) UserCreated(string)    {}
func (noopMetrics) LoginAttempt(bool)     {}
func (noopMetrics) BusinessDeleted(int64) {}

var _ service.AccountMetrics = noopMetrics{}

func metricsOrNoop(m service.AccountMetrics) service.AccountMetrics {
	if m == nil {
		return noopMetrics{}
	}

	return m
}
