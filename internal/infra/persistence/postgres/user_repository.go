// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// userUpdatableColumns are written on every Update, including zero values.
var userUpdatableColumns = []string{
	"email", "full_name", "phone", "business_id", "role",
	"is_active", "is_staff", "is_superuser", "last_login", "password_hash",
}

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by email. The query is pinned to the
// primary so a login right after a password change never reads a stale replica.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// List returns the users matching filter, ordered by email.
func (repo *userRepository) List(ctx context.Context, filter repository.UserFilter, page repository.Page) ([]*entity.User, error) {
	query := applyPage(repo.filtered(ctx, filter).Order("email ASC"), page)

	var userMs []*model.UserModel
	if err := query.Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for _, userM := range userMs {
		users = append(users, toUserDomain(userM))
	}

	return users, nil
}

// Count returns the number of users matching filter.
func (repo *userRepository) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	var count int64
	if err := repo.filtered(ctx, filter).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return count, nil
}

func (repo *userRepository) filtered(ctx context.Context, filter repository.UserFilter) *gorm.DB {
	query := repo.db.WithContext(ctx).Model(&model.UserModel{})
	if filter.BusinessID != nil {
		query = query.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", filter.Role.String())
	}

	return query
}

// Create persists a new user. The generated ID is written back to user.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(userM).Error; err != nil {
		return translateUserWriteError(err, domainerrors.ErrUserCreationFailed, "failed to create user")
	}

	user.ID = userM.ID

	return nil
}

// Update writes every mutable column of user.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(userM).
		Select(userUpdatableColumns).
		Omit(clause.Associations).
		Updates(userM)
	if result.Error != nil {
		return translateUserWriteError(result.Error, domainerrors.ErrUserUpdateFailed, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin stamps last_login without touching other columns.
func (repo *userRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update("last_login", at)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update last login")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes a single user.
func (repo *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.UserModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// DeleteByBusinessID removes every user of a business.
func (repo *userRepository) DeleteByBusinessID(ctx context.Context, businessID uuid.UUID) (int64, error) {
	result := repo.db.WithContext(ctx).Where("business_id = ?", businessID).Delete(&model.UserModel{})
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete business users")
	}

	return result.RowsAffected, nil
}

// translateUserWriteError converts constraint violations into domain errors.
func translateUserWriteError(err error, fallback *domainerrors.BaseError, details string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrBusinessNotFound.WrapMessage("referenced business does not exist")
	case isCheckConstraintViolation(err):
		return domainerrors.ErrInvalidRole.WrapMessage("role rejected by check constraint")
	case isNotNullConstraintViolation(err):
		return fallback.WrapMessage("missing required user information")
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

func applyPage(query *gorm.DB, page repository.Page) *gorm.DB {
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}

	return query
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		FullName:     data.FullName,
		Phone:        data.Phone,
		BusinessID:   data.BusinessID,
		Role:         entity.Role(data.Role),
		IsActive:     data.IsActive,
		IsStaff:      data.IsStaff,
		IsSuperuser:  data.IsSuperuser,
		DateJoined:   data.DateJoined,
		LastLogin:    data.LastLogin,
		PasswordHash: data.PasswordHash,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		FullName:     data.FullName,
		Phone:        data.Phone,
		BusinessID:   data.BusinessID,
		Role:         data.Role.String(),
		IsActive:     data.IsActive,
		IsStaff:      data.IsStaff,
		IsSuperuser:  data.IsSuperuser,
		DateJoined:   data.DateJoined,
		LastLogin:    data.LastLogin,
		PasswordHash: data.PasswordHash,
	}
}
