package impl

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	identity usecase.IdentityUsecase
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Identity usecase.IdentityUsecase
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		identity: params.Identity,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*entity.User, error) {
	if err := authorize(actor, entity.PermViewUser); err != nil {
		return nil, err
	}

	return srv.loadTarget(ctx, actor, id)
}

func (srv *userService) List(ctx context.Context, actor *entity.User, filter usecase.UserListFilter, page repository.Page) ([]*entity.User, int64, error) {
	if err := authorize(actor, entity.PermViewUser); err != nil {
		return nil, 0, err
	}

	repoFilter := repository.UserFilter{BusinessID: filter.BusinessID, Role: filter.Role}
	if repoFilter.Role != nil && !repoFilter.Role.IsValid() {
		return nil, 0, errors.Wrap(domainerrors.ErrInvalidRole.WithDetails(fmt.Sprintf("%q is not a valid role", *repoFilter.Role)), "invalid role filter")
	}
	if scope := businessScope(actor); scope != nil {
		if repoFilter.BusinessID != nil && *repoFilter.BusinessID != *scope {
			return nil, 0, forbidden(ctx, srv.log(ctx), actor, "business filter outside actor scope")
		}
		repoFilter.BusinessID = scope
	}

	users, err := srv.userRepo.List(ctx, repoFilter, page)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list users")
	}

	total, err := srv.userRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count users")
	}

	return users, total, nil
}

// Create adds an account through the identity factory. Actors without
// superuser rights may only create non-superuser accounts in their own business.
func (srv *userService) Create(ctx context.Context, actor *entity.User, input usecase.CreateUserInput) (*entity.User, error) {
	if err := authorize(actor, entity.PermAddUser); err != nil {
		return nil, err
	}

	if !actor.IsSuperuser {
		if input.Extra.IsSuperuser != nil && *input.Extra.IsSuperuser {
			return nil, forbidden(ctx, srv.log(ctx), actor, "only superusers may grant superuser status")
		}
		if actor.BusinessID == nil {
			return nil, forbidden(ctx, srv.log(ctx), actor, "actor has no business")
		}
		if input.Extra.BusinessID == nil {
			input.Extra.BusinessID = ptr(*actor.BusinessID)
		} else if !actor.BelongsTo(*input.Extra.BusinessID) {
			return nil, forbidden(ctx, srv.log(ctx), actor, "business outside actor scope")
		}
	}

	return srv.identity.CreateUser(ctx, input)
}

func (srv *userService) CreateSuperuser(ctx context.Context, actor *entity.User, input usecase.CreateUserInput) (*entity.User, error) {
	if actor == nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "no authenticated actor")
	}
	if !actor.IsActive || !actor.IsSuperuser {
		return nil, forbidden(ctx, srv.log(ctx), actor, "only superusers may create superusers")
	}

	return srv.identity.CreateSuperuser(ctx, input)
}

func (srv *userService) UpdateProfile(ctx context.Context, actor *entity.User, id uuid.UUID, input usecase.UpdateProfileInput) (*entity.User, error) {
	if err := authorize(actor, entity.PermChangeUser); err != nil {
		return nil, err
	}

	user, err := srv.loadTarget(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		if utf8.RuneCountInString(*input.FullName) > maxFullNameLength {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("full name is too long"), "invalid profile")
		}
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		switch {
		case *input.Phone == "":
			user.Phone = nil
		case utf8.RuneCountInString(*input.Phone) > maxPhoneLength:
			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("phone is too long"), "invalid profile")
		default:
			user.Phone = ptr(*input.Phone)
		}
	}
	if input.BusinessID != nil {
		if !actor.IsSuperuser && !actor.BelongsTo(*input.BusinessID) {
			return nil, forbidden(ctx, srv.log(ctx), actor, "business outside actor scope")
		}
		if *input.BusinessID == uuid.Nil {
			user.BusinessID = nil
		} else {
			user.BusinessID = ptr(*input.BusinessID)
		}
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsStaff != nil {
		user.IsStaff = *input.IsStaff
	}

	if user.IsSuperuser && !user.IsStaff {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("superuser must have is_staff=true"), "invalid profile")
	}

	if err := srv.save(ctx, user); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Profile updated", slog.Any("userID", user.ID), slog.Any("actorID", actor.ID))

	return user, nil
}

func (srv *userService) ChangeRole(ctx context.Context, actor *entity.User, id uuid.UUID, role entity.Role) (*entity.User, error) {
	if err := authorize(actor, entity.PermChangeUser); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrInvalidRole.WithDetails(fmt.Sprintf("%q is not a valid role", role)), "invalid role")
	}

	user, err := srv.loadTarget(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	previous := user.Role
	user.Role = role
	if err := srv.save(ctx, user); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Role changed", slog.Any("userID", user.ID), slog.String("from", previous.String()), slog.String("to", role.String()))

	return user, nil
}

// SetPassword replaces the account's password. Accounts may always change
// their own password; an empty password makes the account unusable for login.
func (srv *userService) SetPassword(ctx context.Context, actor *entity.User, id uuid.UUID, password string) error {
	if actor == nil {
		return errors.Wrap(domainerrors.ErrUnauthorized, "no authenticated actor")
	}
	if actor.ID != id {
		if err := authorize(actor, entity.PermChangeUser); err != nil {
			return err
		}
	}

	user, err := srv.loadTarget(ctx, actor, id)
	if err != nil {
		return err
	}

	if password == "" {
		user.PasswordHash = srv.hasher.Unusable()
	} else {
		hash, err := srv.hasher.Hash(password)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
		}
		user.PasswordHash = hash
	}

	if err := srv.save(ctx, user); err != nil {
		return err
	}

	srv.log(ctx).Info("Password changed", slog.Any("userID", user.ID), slog.Any("actorID", actor.ID))

	return nil
}

func (srv *userService) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	if err := authorize(actor, entity.PermDeleteUser); err != nil {
		return err
	}
	if actor.ID == id {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("accounts cannot delete themselves"), "invalid delete")
	}

	if _, err := srv.loadTarget(ctx, actor, id); err != nil {
		return err
	}

	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user vanished during delete")
		}

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", id), slog.Any("actorID", actor.ID))

	return nil
}

func (srv *userService) Count(ctx context.Context, actor *entity.User) (int64, error) {
	if err := authorize(actor, entity.PermViewUser); err != nil {
		return 0, err
	}

	total, err := srv.userRepo.Count(ctx, repository.UserFilter{BusinessID: businessScope(actor)})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count users")
	}

	return total, nil
}

// loadTarget fetches the user and enforces the actor's tenant scope.
// Self access is always allowed.
func (srv *userService) loadTarget(ctx context.Context, actor *entity.User, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrapf(domainerrors.ErrUserNotFound, "user %s", id)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if actor.ID != user.ID && !canAccessUser(actor, user) {
		return nil, forbidden(ctx, srv.log(ctx), actor, "user outside actor scope")
	}

	return user, nil
}

func (srv *userService) save(ctx context.Context, user *entity.User) error {
	if err := srv.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user vanished during update")
		}

		return errors.Wrap(err, "failed to update user")
	}

	return nil
}
