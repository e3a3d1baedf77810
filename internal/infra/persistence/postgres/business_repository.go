package postgres

import (
	"context"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository returns a GORM backed repository.BusinessRepository.
func NewBusinessRepository(db *gorm.DB) repository.BusinessRepository {
	return &businessRepository{db: db}
}

func (repo *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var businessM model.BusinessModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&businessM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBusinessNotFound
		}

		return nil, errors.Wrap(err, "failed to find business by id")
	}

	return toBusinessDomain(&businessM), nil
}

func (repo *businessRepository) List(ctx context.Context, onlyID *uuid.UUID, page repository.Page) ([]*entity.Business, error) {
	query := applyPage(repo.scoped(ctx, onlyID).Order("name ASC").Order("id ASC"), page)

	var businessMs []*model.BusinessModel
	if err := query.Find(&businessMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	businesses := make([]*entity.Business, 0, len(businessMs))
	for _, businessM := range businessMs {
		businesses = append(businesses, toBusinessDomain(businessM))
	}

	return businesses, nil
}

func (repo *businessRepository) Count(ctx context.Context, onlyID *uuid.UUID) (int64, error) {
	var count int64
	if err := repo.scoped(ctx, onlyID).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count businesses")
	}

	return count, nil
}

func (repo *businessRepository) scoped(ctx context.Context, onlyID *uuid.UUID) *gorm.DB {
	query := repo.db.WithContext(ctx).Model(&model.BusinessModel{})
	if onlyID != nil {
		query = query.Where("id = ?", *onlyID)
	}

	return query
}

func (repo *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	businessM := fromBusinessDomain(business)
	if err := repo.db.WithContext(ctx).Create(businessM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrBusinessCreationFailed.WrapMessage("missing required business information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create business")
	}

	business.ID = businessM.ID
	business.CreatedAt = businessM.CreatedAt

	return nil
}

func (repo *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BusinessModel{}).
		Where("id = ?", business.ID).
		Updates(map[string]any{
			"name":    business.Name,
			"address": business.Address,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update business")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

func (repo *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.BusinessModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete business")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

func toBusinessDomain(data *model.BusinessModel) *entity.Business {
	if data == nil {
		return nil
	}

	return &entity.Business{
		ID:        data.ID,
		Name:      data.Name,
		Address:   data.Address,
		CreatedAt: data.CreatedAt,
	}
}

func fromBusinessDomain(data *entity.Business) *model.BusinessModel {
	if data == nil {
		return nil
	}

	return &model.BusinessModel{
		ID:        data.ID,
		Name:      data.Name,
		Address:   data.Address,
		CreatedAt: data.CreatedAt,
	}
}
