// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// Page bounds a list query.
type Page struct {
	Limit  int
	Offset int
}

// UserFilter narrows a user listing. Nil fields are not applied.
type UserFilter struct {
	BusinessID *uuid.UUID
	Role       *entity.Role
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email address.
	// The lookup is served by the primary so a fresh credential is always visible.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// List returns users matching filter, ordered by email.
	List(ctx context.Context, filter UserFilter, page Page) ([]*entity.User, error)

	// Count returns the number of users matching filter.
	Count(ctx context.Context, filter UserFilter) (int64, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// UpdateLastLogin stamps the user's last successful login.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// Delete removes a single user.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByBusinessID removes every user of a business and returns how many were removed.
	DeleteByBusinessID(ctx context.Context, businessID uuid.UUID) (int64, error)
}
