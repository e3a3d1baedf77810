package usecase

import (
	"context"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
)

// UserListFilter narrows the account listing.
type UserListFilter struct {
	BusinessID *uuid.UUID
	Role       *entity.Role
}

// UpdateProfileInput holds the profile changes. Nil fields are left untouched.
// An empty Phone clears the number and uuid.Nil detaches the account from its business.
type UpdateProfileInput struct {
	FullName   *string
	Phone      *string
	BusinessID *uuid.UUID
	IsActive   *bool
	IsStaff    *bool
}

// UserUsecase administers accounts on behalf of an authenticated actor.
// Every operation checks the actor's permission and tenant scope.
type UserUsecase interface {
	Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*entity.User, error)
	List(ctx context.Context, actor *entity.User, filter UserListFilter, page repository.Page) ([]*entity.User, int64, error)
	Create(ctx context.Context, actor *entity.User, input CreateUserInput) (*entity.User, error)
	CreateSuperuser(ctx context.Context, actor *entity.User, input CreateUserInput) (*entity.User, error)
	UpdateProfile(ctx context.Context, actor *entity.User, id uuid.UUID, input UpdateProfileInput) (*entity.User, error)
	ChangeRole(ctx context.Context, actor *entity.User, id uuid.UUID, role entity.Role) (*entity.User, error)
	SetPassword(ctx context.Context, actor *entity.User, id uuid.UUID, password string) error
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
	Count(ctx context.Context, actor *entity.User) (int64, error)
}
