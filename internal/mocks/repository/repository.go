// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"
	"time"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUserRepository is a mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a mock whose expectations are asserted on test cleanup.
func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, filter repository.UserFilter, page repository.Page) ([]*entity.User, error) {
	args := m.Called(ctx, filter, page)
	users, _ := args.Get(0).([]*entity.User)

	return users, args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) DeleteByBusinessID(ctx context.Context, businessID uuid.UUID) (int64, error) {
	args := m.Called(ctx, businessID)

	return args.Get(0).(int64), args.Error(1)
}

// MockBusinessRepository is a mock of repository.BusinessRepository.
type MockBusinessRepository struct {
	mock.Mock
}

// NewMockBusinessRepository creates a mock whose expectations are asserted on test cleanup.
func NewMockBusinessRepository(t testingT) *MockBusinessRepository {
	m := &MockBusinessRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	args := m.Called(ctx, id)
	business, _ := args.Get(0).(*entity.Business)

	return business, args.Error(1)
}

func (m *MockBusinessRepository) List(ctx context.Context, onlyID *uuid.UUID, page repository.Page) ([]*entity.Business, error) {
	args := m.Called(ctx, onlyID, page)
	businesses, _ := args.Get(0).([]*entity.Business)

	return businesses, args.Error(1)
}

func (m *MockBusinessRepository) Count(ctx context.Context, onlyID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, onlyID)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBusinessRepository) Create(ctx context.Context, business *entity.Business) error {
	return m.Called(ctx, business).Error(0)
}

func (m *MockBusinessRepository) Update(ctx context.Context, business *entity.Business) error {
	return m.Called(ctx, business).Error(0)
}

func (m *MockBusinessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockRepositoryFactory hands out fixed repositories.
type MockRepositoryFactory struct {
	Users      repository.UserRepository
	Businesses repository.BusinessRepository
}

func (f *MockRepositoryFactory) UserRepo() repository.UserRepository { return f.Users }

func (f *MockRepositoryFactory) BusinessRepo() repository.BusinessRepository { return f.Businesses }

// MockTransactionManager is a mock of repository.TransactionManager.
// When the expectation returns a repository.RepositoryFactory the callback runs
// against it and its result is returned; otherwise the expectation's error is returned.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock whose expectations are asserted on test cleanup.
func NewMockTransactionManager(t testingT) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if factory, ok := args.Get(0).(repository.RepositoryFactory); ok {
		return fn(factory)
	}

	return args.Error(0)
}

var (
	_ repository.UserRepository     = (*MockUserRepository)(nil)
	_ repository.BusinessRepository = (*MockBusinessRepository)(nil)
	_ repository.RepositoryFactory  = (*MockRepositoryFactory)(nil)
	_ repository.TransactionManager = (*MockTransactionManager)(nil)
)
