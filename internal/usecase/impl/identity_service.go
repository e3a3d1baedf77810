package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxEmailLength    = 254
	maxFullNameLength = 255
	maxPhoneLength    = 20

	kindUser      = "user"
	kindSuperuser = "superuser"
)

// identityService implements the IdentityUsecase interface.
type identityService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	metrics  service.AccountMetrics
	now      func() time.Time
	logger   *slog.Logger
}

// IdentityServiceParams holds dependencies for IdentityService, injected by Fx.
type IdentityServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Metrics  service.AccountMetrics `optional:"true"`
	Logger   *slog.Logger
}

// NewIdentityService is the constructor for identityService.
func NewIdentityService(params IdentityServiceParams) usecase.IdentityUsecase {
	return &identityService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		metrics:  metricsOrNoop(params.Metrics),
		now:      time.Now,
		logger:   params.Logger,
	}
}

func (srv *identityService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateUser creates a regular account. Extra fields that were not provided
// default to role=staff, active, non-staff, non-superuser, joined now.
func (srv *identityService) CreateUser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	return srv.create(ctx, input, kindUser)
}

// CreateSuperuser creates an account holding every permission. Explicitly
// passing IsStaff=false or IsSuperuser=false is rejected.
func (srv *identityService) CreateSuperuser(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	extra := input.Extra
	if extra.IsStaff == nil {
		extra.IsStaff = ptr(true)
	}
	if extra.IsSuperuser == nil {
		extra.IsSuperuser = ptr(true)
	}
	if extra.Role == nil {
		extra.Role = ptr(entity.RoleAdmin)
	}

	if !*extra.IsStaff {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("superuser must have is_staff=true"), "invalid superuser flags")
	}
	if !*extra.IsSuperuser {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("superuser must have is_superuser=true"), "invalid superuser flags")
	}

	input.Extra = extra

	return srv.create(ctx, input, kindSuperuser)
}

func (srv *identityService) create(ctx context.Context, input usecase.CreateUserInput, kind string) (*entity.User, error) {
	user, err := srv.buildUser(input)
	if err != nil {
		srv.log(ctx).Warn("Rejected account input", slog.String("kind", kind), slog.Any("error", err))

		return nil, err
	}

	if input.Password == "" {
		user.PasswordHash = srv.hasher.Unusable()
	} else {
		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password", slog.String("kind", kind), slog.Any("error", err))

			return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
		}
		user.PasswordHash = hash
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		srv.log(ctx).Warn("Failed to persist account", slog.String("kind", kind), slog.String("email", user.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.metrics.UserCreated(kind)
	srv.log(ctx).Info("Account created", slog.String("kind", kind), slog.Any("userID", user.ID), slog.String("role", user.Role.String()))

	return user, nil
}

// buildUser normalizes the input and fills every field the caller left unset.
func (srv *identityService) buildUser(input usecase.CreateUserInput) (*entity.User, error) {
	email := entity.NormalizeEmail(input.Email)
	if email == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("the email must be set"), "invalid email")
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("email is too long"), "invalid email")
	}
	if utf8.RuneCountInString(input.FullName) > maxFullNameLength {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("full name is too long"), "invalid full name")
	}

	extra := input.Extra
	user := &entity.User{
		Email:      email,
		FullName:   input.FullName,
		BusinessID: extra.BusinessID,
		Role:       entity.DefaultRole,
		IsActive:   true,
		DateJoined: srv.now().UTC(),
	}

	if extra.Phone != nil && *extra.Phone != "" {
		if utf8.RuneCountInString(*extra.Phone) > maxPhoneLength {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("phone is too long"), "invalid phone")
		}
		user.Phone = ptr(*extra.Phone)
	}
	if extra.Role != nil {
		if !extra.Role.IsValid() {
			return nil, errors.Wrap(domainerrors.ErrInvalidRole.WithDetails(fmt.Sprintf("%q is not a valid role", *extra.Role)), "invalid role")
		}
		user.Role = *extra.Role
	}
	if extra.IsActive != nil {
		user.IsActive = *extra.IsActive
	}
	if extra.IsStaff != nil {
		user.IsStaff = *extra.IsStaff
	}
	if extra.IsSuperuser != nil {
		user.IsSuperuser = *extra.IsSuperuser
	}
	if extra.DateJoined != nil {
		user.DateJoined = *extra.DateJoined
	}

	return user, nil
}
