package service

// AccountMetrics records account lifecycle events.
type AccountMetrics interface {
	UserCreated(kind string)
	LoginAttempt(success bool)
	BusinessDeleted(cascadedUsers int64)
}
