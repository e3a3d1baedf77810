package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBusinessNotFound is returned when a business is not found.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessRepository defines the persistence operations for tenants.
type BusinessRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)

	// List returns businesses ordered by name. A non-nil onlyID restricts the result to that business.
	List(ctx context.Context, onlyID *uuid.UUID, page Page) ([]*entity.Business, error)

	Count(ctx context.Context, onlyID *uuid.UUID) (int64, error)

	Create(ctx context.Context, business *entity.Business) error

	Update(ctx context.Context, business *entity.Business) error

	// Delete removes the business. The schema cascades the delete to its users.
	Delete(ctx context.Context, id uuid.UUID) error
}
