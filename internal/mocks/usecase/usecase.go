// Package usecase provides testify mocks for the application usecases.
package usecase

import (
	"context"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func newMock[M interface {
	Test(mock.TestingT)
	AssertExpectations(mock.TestingT) bool
}](t testingT, m M) M {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func userArg(args mock.Arguments, i int) *entity.User {
	user, _ := args.Get(i).(*entity.User)

	return user
}

func businessArg(args mock.Arguments, i int) *entity.Business {
	business, _ := args.Get(i).(*entity.Business)

	return business
}

// MockIdentityUsecase is a mock of usecase.IdentityUsecase.
type MockIdentityUsecase struct {
	mock.Mock
}

// NewMockIdentityUsecase creates a mock whose expectations are asserted on test cleanup.
func NewMockIdentityUsecase(t testingT) *MockIdentityUsecase {
	return newMock(t, &MockIdentityUsecase{})
}

func (m *MockIdentityUsecase) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	args := m.Called(ctx, input)

	return userArg(args, 0), args.Error(1)
}

func (m *MockIdentityUsecase) CreateSuperuser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	args := m.Called(ctx, input)

	return userArg(args, 0), args.Error(1)
}

// MockSessionUsecase is a mock of usecase.SessionUsecase.
type MockSessionUsecase struct {
	mock.Mock
}

// NewMockSessionUsecase creates a mock whose expectations are asserted on test cleanup.
func NewMockSessionUsecase(t testingT) *MockSessionUsecase {
	return newMock(t, &MockSessionUsecase{})
}

func (m *MockSessionUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	out, _ := args.Get(0).(*usecase.LoginOutput)

	return out, args.Error(1)
}

func (m *MockSessionUsecase) ResolveActor(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)

	return userArg(args, 0), args.Error(1)
}

// MockBusinessUsecase is a mock of usecase.BusinessUsecase.
type MockBusinessUsecase struct {
	mock.Mock
}

// NewMockBusinessUsecase creates a mock whose expectations are asserted on test cleanup.
func NewMockBusinessUsecase(t testingT) *MockBusinessUsecase {
	return newMock(t, &MockBusinessUsecase{})
}

func (m *MockBusinessUsecase) Create(ctx context.Context, actor *entity.User, input usecase.BusinessInput) (*entity.Business, error) {
	args := m.Called(ctx, actor, input)

	return businessArg(args, 0), args.Error(1)
}

func (m *MockBusinessUsecase) Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*entity.Business, error) {
	args := m.Called(ctx, actor, id)

	return businessArg(args, 0), args.Error(1)
}

func (m *MockBusinessUsecase) List(ctx context.Context, actor *entity.User, page repository.Page) ([]*entity.Business, int64, error) {
	args := m.Called(ctx, actor, page)
	businesses, _ := args.Get(0).([]*entity.Business)

	return businesses, args.Get(1).(int64), args.Error(2)
}

func (m *MockBusinessUsecase) Update(ctx context.Context, actor *entity.User, id uuid.UUID, input usecase.BusinessInput) (*entity.Business, error) {
	args := m.Called(ctx, actor, id, input)

	return businessArg(args, 0), args.Error(1)
}

func (m *MockBusinessUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockBusinessUsecase) Count(ctx context.Context, actor *entity.User) (int64, error) {
	args := m.Called(ctx, actor)

	return args.Get(0).(int64), args.Error(1)
}

// MockUserUsecase is a mock of usecase.UserUsecase.
type MockUserUsecase struct {
	mock.Mock
}

// NewMockUserUsecase creates a mock whose expectations are asserted on test cleanup.
func NewMockUserUsecase(t testingT) *MockUserUsecase {
	return newMock(t, &MockUserUsecase{})
}

func (m *MockUserUsecase) Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, actor, id)

	return userArg(args, 0), args.Error(1)
}

func (m *MockUserUsecase) List(ctx context.Context, actor *entity.User, filter usecase.UserListFilter, page repository.Page) ([]*entity.User, int64, error) {
	args := m.Called(ctx, actor, filter, page)
	users, _ := args.Get(0).([]*entity.User)

	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserUsecase) Create(ctx context.Context, actor *entity.User, input usecase.CreateUserInput) (*entity.User, error) {
	args := m.Called(ctx, actor, input)

	return userArg(args, 0), args.Error(1)
}

func (m *MockUserUsecase) CreateSuperuser(ctx context.Context, actor *entity.User, input usecase.CreateUserInput) (*entity.User, error) {
	args := m.Called(ctx, actor, input)

	return userArg(args, 0), args.Error(1)
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, actor *entity.User, id uuid.UUID, input usecase.UpdateProfileInput) (*entity.User, error) {
	args := m.Called(ctx, actor, id, input)

	return userArg(args, 0), args.Error(1)
}

func (m *MockUserUsecase) ChangeRole(ctx context.Context, actor *entity.User, id uuid.UUID, role entity.Role) (*entity.User, error) {
	args := m.Called(ctx, actor, id, role)

	return userArg(args, 0), args.Error(1)
}

func (m *MockUserUsecase) SetPassword(ctx context.Context, actor *entity.User, id uuid.UUID, password string) error {
	return m.Called(ctx, actor, id, password).Error(0)
}

func (m *MockUserUsecase) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	return m.Called(ctx, actor, id).Error(0)
}

func (m *MockUserUsecase) Count(ctx context.Context, actor *entity.User) (int64, error) {
	args := m.Called(ctx, actor)

	return args.Get(0).(int64), args.Error(1)
}

var (
	_ usecase.IdentityUsecase = (*MockIdentityUsecase)(nil)
	_ usecase.SessionUsecase  = (*MockSessionUsecase)(nil)
	_ usecase.BusinessUsecase = (*MockBusinessUsecase)(nil)
	_ usecase.UserUsecase     = (*MockUserUsecase)(nil)
)
