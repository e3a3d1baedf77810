package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database with foreign keys enabled.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	db = configure(db, newQueryLogger(nil, nil, nil))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.BusinessModel{}, &model.UserModel{}))

	return db
}

func newTestBusiness(t *testing.T, repo repository.BusinessRepository, name string) *entity.Business {
	t.Helper()

	business := &entity.Business{Name: name, Address: name + " street"}
	require.NoError(t, repo.Create(context.Background(), business))

	return business
}

func newTestUser(email string, businessID *uuid.UUID, role entity.Role) *entity.User {
	return &entity.User{
		Email:        email,
		FullName:     "Test " + email,
		BusinessID:   businessID,
		Role:         role,
		IsActive:     true,
		DateJoined:   time.Now().UTC(),
		PasswordHash: "hash",
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	businesses := NewBusinessRepository(db)
	users := NewUserRepository(db)

	business := newTestBusiness(t, businesses, "Acme")
	phone := "+15550001"
	user := newTestUser("ann@example.com", &business.ID, entity.RoleAccountant)
	user.Phone = &phone

	require.NoError(t, users.Create(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	byID, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", byID.Email)
	assert.Equal(t, entity.RoleAccountant, byID.Role)
	require.NotNil(t, byID.Phone)
	assert.Equal(t, phone, *byID.Phone)
	require.NotNil(t, byID.BusinessID)
	assert.Equal(t, business.ID, *byID.BusinessID)
	assert.True(t, byID.IsActive)
	assert.False(t, byID.IsStaff)
	assert.Nil(t, byID.LastLogin)
	assert.WithinDuration(t, user.DateJoined, byID.DateJoined, time.Second)

	byEmail, err := users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_NotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	_, err := users.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = users.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	assert.ErrorIs(t, users.Delete(ctx, uuid.New()), repository.ErrUserNotFound)
	assert.ErrorIs(t, users.UpdateLastLogin(ctx, uuid.New(), time.Now()), repository.ErrUserNotFound)

	ghost := newTestUser("ghost@example.com", nil, entity.RoleOwner)
	ghost.ID = uuid.New()
	assert.ErrorIs(t, users.Update(ctx, ghost), repository.ErrUserNotFound)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	require.NoError(t, users.Create(ctx, newTestUser("dup@example.com", nil, entity.RoleOwner)))

	err := users.Create(ctx, newTestUser("dup@example.com", nil, entity.RoleStaff))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserRepository_CreateUnknownBusiness(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db)

	missing := uuid.New()
	err := users.Create(context.Background(), newTestUser("orphan@example.com", &missing, entity.RoleOwner))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrBusinessNotFound)
}

func TestUserRepository_UpdateWritesZeroValues(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	phone := "+15550002"
	user := newTestUser("bob@example.com", nil, entity.RoleStaff)
	user.Phone = &phone
	user.IsStaff = true
	require.NoError(t, users.Create(ctx, user))

	user.IsActive = false
	user.IsStaff = false
	user.Phone = nil
	user.Role = entity.RoleAdmin
	user.PasswordHash = "new-hash"
	require.NoError(t, users.Update(ctx, user))

	got, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.False(t, got.IsStaff)
	assert.Nil(t, got.Phone)
	assert.Equal(t, entity.RoleAdmin, got.Role)
	assert.Equal(t, "new-hash", got.PasswordHash)
}

func TestUserRepository_UpdateLastLogin(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	user := newTestUser("carol@example.com", nil, entity.RoleOwner)
	require.NoError(t, users.Create(ctx, user))

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, users.UpdateLastLogin(ctx, user.ID, at))

	got, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	assert.WithinDuration(t, at, *got.LastLogin, time.Second)
}

func TestUserRepository_ListAndCount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	businesses := NewBusinessRepository(db)
	users := NewUserRepository(db)

	acme := newTestBusiness(t, businesses, "Acme")
	globex := newTestBusiness(t, businesses, "Globex")

	require.NoError(t, users.Create(ctx, newTestUser("c@acme.test", &acme.ID, entity.RoleOwner)))
	require.NoError(t, users.Create(ctx, newTestUser("a@acme.test", &acme.ID, entity.RoleStaff)))
	require.NoError(t, users.Create(ctx, newTestUser("b@globex.test", &globex.ID, entity.RoleOwner)))
	require.NoError(t, users.Create(ctx, newTestUser("root@example.com", nil, entity.RoleAdmin)))

	all, err := users.List(ctx, repository.UserFilter{}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "a@acme.test", all[0].Email)

	acmeOnly, err := users.List(ctx, repository.UserFilter{BusinessID: &acme.ID}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, acmeOnly, 2)
	assert.Equal(t, "a@acme.test", acmeOnly[0].Email)
	assert.Equal(t, "c@acme.test", acmeOnly[1].Email)

	owner := entity.RoleOwner
	owners, err := users.Count(ctx, repository.UserFilter{Role: &owner})
	require.NoError(t, err)
	assert.EqualValues(t, 2, owners)

	paged, err := users.List(ctx, repository.UserFilter{}, repository.Page{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 2)
	assert.Equal(t, "b@globex.test", paged[0].Email)
	assert.Equal(t, "c@acme.test", paged[1].Email)
}

func TestUserRepository_DeleteByBusinessID(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	businesses := NewBusinessRepository(db)
	users := NewUserRepository(db)

	acme := newTestBusiness(t, businesses, "Acme")
	require.NoError(t, users.Create(ctx, newTestUser("a@acme.test", &acme.ID, entity.RoleOwner)))
	require.NoError(t, users.Create(ctx, newTestUser("b@acme.test", &acme.ID, entity.RoleStaff)))
	keep := newTestUser("keep@example.com", nil, entity.RoleOwner)
	require.NoError(t, users.Create(ctx, keep))

	deleted, err := users.DeleteByBusinessID(ctx, acme.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	_, err = users.FindByID(ctx, keep.ID)
	assert.NoError(t, err)
}

func TestBusinessRepository_CRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	businesses := NewBusinessRepository(db)

	business := newTestBusiness(t, businesses, "Initech")
	assert.NotEqual(t, uuid.Nil, business.ID)
	assert.False(t, business.CreatedAt.IsZero())

	business.Name = "Initrode"
	business.Address = ""
	require.NoError(t, businesses.Update(ctx, business))

	got, err := businesses.FindByID(ctx, business.ID)
	require.NoError(t, err)
	assert.Equal(t, "Initrode", got.Name)
	assert.Empty(t, got.Address)

	require.NoError(t, businesses.Delete(ctx, business.ID))
	_, err = businesses.FindByID(ctx, business.ID)
	assert.ErrorIs(t, err, repository.ErrBusinessNotFound)
	assert.ErrorIs(t, businesses.Delete(ctx, business.ID), repository.ErrBusinessNotFound)
	assert.ErrorIs(t, businesses.Update(ctx, business), repository.ErrBusinessNotFound)
}

func TestBusinessRepository_ListScoped(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	businesses := NewBusinessRepository(db)

	zeta := newTestBusiness(t, businesses, "Zeta")
	newTestBusiness(t, businesses, "Alpha")

	all, err := businesses.List(ctx, nil, repository.Page{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alpha", all[0].Name)

	scoped, err := businesses.List(ctx, &zeta.ID, repository.Page{})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, zeta.ID, scoped[0].ID)

	count, err := businesses.Count(ctx, &zeta.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestBusinessRepository_DeleteCascadesToUsers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	businesses := NewBusinessRepository(db)
	users := NewUserRepository(db)

	business := newTestBusiness(t, businesses, "Cascade")
	user := newTestUser("member@cascade.test", &business.ID, entity.RoleOwner)
	require.NoError(t, users.Create(ctx, user))

	require.NoError(t, businesses.Delete(ctx, business.ID))

	_, err := users.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tm := NewTransactionManager(db)
	errBoom := errors.New("boom")

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.UserRepo().Create(ctx, newTestUser("tx@example.com", nil, entity.RoleOwner)); err != nil {
			return err
		}

		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = NewUserRepository(db).FindByEmail(ctx, "tx@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestTransactionManager_Commits(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tm := NewTransactionManager(db)

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		business := &entity.Business{Name: "Tx"}
		if err := factory.BusinessRepo().Create(ctx, business); err != nil {
			return err
		}

		return factory.UserRepo().Create(ctx, newTestUser("tx@example.com", &business.ID, entity.RoleOwner))
	})
	require.NoError(t, err)

	_, err = NewUserRepository(db).FindByEmail(ctx, "tx@example.com")
	assert.NoError(t, err)
}
