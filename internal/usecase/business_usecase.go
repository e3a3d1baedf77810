package usecase

import (
	"context"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
)

// BusinessInput carries the editable tenant attributes.
type BusinessInput struct {
	Name    string
	Address string
}

// BusinessUsecase manages tenants on behalf of an authenticated actor.
type BusinessUsecase interface {
	Create(ctx context.Context, actor *entity.User, input BusinessInput) (*entity.Business, error)
	Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*entity.Business, error)
	// List returns one page of the businesses visible to actor and the total count.
	List(ctx context.Context, actor *entity.User, page repository.Page) ([]*entity.Business, int64, error)
	Update(ctx context.Context, actor *entity.User, id uuid.UUID, input BusinessInput) (*entity.Business, error)
	// Delete removes the business and every account that belongs to it.
	Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error
	Count(ctx context.Context, actor *entity.User) (int64, error)
}
