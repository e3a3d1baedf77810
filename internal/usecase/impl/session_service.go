package impl

import (
	"context"
	"log/slog"
	"time"

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

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	metrics      service.AccountMetrics
	now          func() time.Time
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Metrics      service.AccountMetrics `optional:"true"`
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		metrics:      metricsOrNoop(params.Metrics),
		now:          time.Now,
		logger:       params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies the credentials of an active staff account and issues an access token.
// Every rejection reports ErrInvalidCredentials so callers cannot probe which accounts exist.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, srv.rejectLogin(ctx, email, "unknown email")
		}
		srv.log(ctx).Error("Failed to load user for login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	switch {
	case !user.IsActive:
		return nil, srv.rejectLogin(ctx, email, "inactive account")
	case !user.IsStaff:
		return nil, srv.rejectLogin(ctx, email, "not a staff account")
	case !user.HasUsablePassword() || !srv.hasher.Check(input.Password, user.PasswordHash):
		return nil, srv.rejectLogin(ctx, email, "password mismatch")
	}

	token, expiresAt, err := srv.tokenService.GenerateAccessToken(service.Claims{
		UserID:      user.ID,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage(err.Error())
	}

	loginAt := srv.now().UTC()
	if err := srv.userRepo.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		return nil, errors.Wrap(err, "failed to update last login")
	}
	user.LastLogin = &loginAt

	srv.metrics.LoginAttempt(true)
	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

func (srv *sessionService) rejectLogin(ctx context.Context, email, reason string) error {
	srv.metrics.LoginAttempt(false)
	srv.log(ctx).Warn("Login rejected", slog.String("email", email), slog.String("reason", reason))

	return errors.Wrap(domainerrors.ErrInvalidCredentials, reason)
}

// ResolveActor loads the account behind a verified token.
func (srv *sessionService) ResolveActor(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUnauthorized, "token subject no longer exists")
		}

		return nil, errors.Wrap(err, "failed to resolve actor")
	}

	if !user.IsActive || !user.IsStaff {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "admin console requires an active staff account")
	}

	return user, nil
}
