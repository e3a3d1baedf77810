// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"time"

	"accounts/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockPasswordHasher is a mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock whose expectations are asserted on test cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func (m *MockPasswordHasher) Unusable() string {
	return m.Called().String(0)
}

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock whose expectations are asserted on test cleanup.
func NewMockTokenService(t testingT) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) GenerateAccessToken(claims service.Claims) (string, time.Time, error) {
	args := m.Called(claims)

	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

// MockAccountMetrics is a mock of service.AccountMetrics.
type MockAccountMetrics struct {
	mock.Mock
}

// NewMockAccountMetrics creates a mock whose expectations are asserted on test cleanup.
func NewMockAccountMetrics(t testingT) *MockAccountMetrics {
	m := &MockAccountMetrics{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountMetrics) UserCreated(kind string) { m.Called(kind) }

func (m *MockAccountMetrics) LoginAttempt(success bool) { m.Called(success) }

func (m *MockAccountMetrics) BusinessDeleted(cascadedUsers int64) { m.Called(cascadedUsers) }

var (
	_ service.PasswordHasher = (*MockPasswordHasher)(nil)
	_ service.TokenService   = (*MockTokenService)(nil)
	_ service.AccountMetrics = (*MockAccountMetrics)(nil)
)
