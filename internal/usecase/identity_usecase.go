// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UserFields holds the optional account attributes. A nil field was not
// provided by the caller and receives the factory default.
type UserFields struct {
	Phone       *string
	BusinessID  *uuid.UUID
	Role        *entity.Role
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
	DateJoined  *time.Time
}

// CreateUserInput defines the data required to create an account.
// An empty Password produces an account that cannot log in.
type CreateUserInput struct {
	Email    string
	FullName string
	Password string
	Extra    UserFields
}

// IdentityUsecase is the account factory. Every account in the system is
// created through it.
type IdentityUsecase interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*entity.User, error)
	CreateSuperuser(ctx context.Context, input CreateUserInput) (*entity.User, error)
}
