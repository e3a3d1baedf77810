package impl

import (
	"context"
	"log/slog"
	"strings"
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

const maxBusinessNameLength = 255

// businessService implements the BusinessUsecase interface.
type businessService struct {
	txManager    repository.TransactionManager
	businessRepo repository.BusinessRepository
	metrics      service.AccountMetrics
	logger       *slog.Logger
}

// BusinessServiceParams holds dependencies for BusinessService, injected by Fx.
type BusinessServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	BusinessRepo repository.BusinessRepository
	Metrics      service.AccountMetrics `optional:"true"`
	Logger       *slog.Logger
}

// NewBusinessService is the constructor for businessService.
func NewBusinessService(params BusinessServiceParams) usecase.BusinessUsecase {
	return &businessService{
		txManager:    params.TxManager,
		businessRepo: params.BusinessRepo,
		metrics:      metricsOrNoop(params.Metrics),
		logger:       params.Logger,
	}
}

func (srv *businessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *businessService) Create(ctx context.Context, actor *entity.User, input usecase.BusinessInput) (*entity.Business, error) {
	if err := authorize(actor, entity.PermAddBusiness); err != nil {
		return nil, err
	}

	business := &entity.Business{}
	if err := applyBusinessInput(business, input); err != nil {
		return nil, err
	}

	if err := srv.businessRepo.Create(ctx, business); err != nil {
		return nil, errors.Wrap(err, "failed to create business")
	}

	srv.log(ctx).Info("Business created", slog.Any("businessID", business.ID), slog.Any("actorID", actor.ID))

	return business, nil
}

func (srv *businessService) Get(ctx context.Context, actor *entity.User, id uuid.UUID) (*entity.Business, error) {
	if err := authorize(actor, entity.PermViewBusiness); err != nil {
		return nil, err
	}
	if !canAccessBusiness(actor, id) {
		return nil, forbidden(ctx, srv.log(ctx), actor, "business outside actor scope")
	}

	return srv.find(ctx, srv.businessRepo, id)
}

func (srv *businessService) List(ctx context.Context, actor *entity.User, page repository.Page) ([]*entity.Business, int64, error) {
	if err := authorize(actor, entity.PermViewBusiness); err != nil {
		return nil, 0, err
	}

	scope := businessScope(actor)
	businesses, err := srv.businessRepo.List(ctx, scope, page)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list businesses")
	}

	total, err := srv.businessRepo.Count(ctx, scope)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count businesses")
	}

	return businesses, total, nil
}

func (srv *businessService) Update(ctx context.Context, actor *entity.User, id uuid.UUID, input usecase.BusinessInput) (*entity.Business, error) {
	if err := authorize(actor, entity.PermChangeBusiness); err != nil {
		return nil, err
	}
	if !canAccessBusiness(actor, id) {
		return nil, forbidden(ctx, srv.log(ctx), actor, "business outside actor scope")
	}

	business, err := srv.find(ctx, srv.businessRepo, id)
	if err != nil {
		return nil, err
	}

	if err := applyBusinessInput(business, input); err != nil {
		return nil, err
	}

	if err := srv.businessRepo.Update(ctx, business); err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, errors.Wrap(domainerrors.ErrBusinessNotFound, "business vanished during update")
		}

		return nil, errors.Wrap(err, "failed to update business")
	}

	return business, nil
}

// Delete removes the users of the business and then the business itself in one transaction.
func (srv *businessService) Delete(ctx context.Context, actor *entity.User, id uuid.UUID) error {
	if err := authorize(actor, entity.PermDeleteBusiness); err != nil {
		return err
	}

	var removedUsers int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		businessRepo := repoFactory.BusinessRepo()
		if _, err := srv.find(ctx, businessRepo, id); err != nil {
			return err
		}

		n, err := repoFactory.UserRepo().DeleteByBusinessID(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to delete business users")
		}
		removedUsers = n

		if err := businessRepo.Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete business")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Business delete failed", slog.Any("businessID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute business delete transaction")
	}

	srv.metrics.BusinessDeleted(removedUsers)
	srv.log(ctx).Info("Business deleted", slog.Any("businessID", id), slog.Int64("removedUsers", removedUsers), slog.Any("actorID", actor.ID))

	return nil
}

func (srv *businessService) Count(ctx context.Context, actor *entity.User) (int64, error) {
	if err := authorize(actor, entity.PermViewBusiness); err != nil {
		return 0, err
	}

	total, err := srv.businessRepo.Count(ctx, businessScope(actor))
	if err != nil {
		return 0, errors.Wrap(err, "failed to count businesses")
	}

	return total, nil
}

func (srv *businessService) find(ctx context.Context, repo repository.BusinessRepository, id uuid.UUID) (*entity.Business, error) {
	business, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, errors.Wrapf(domainerrors.ErrBusinessNotFound, "business %s", id)
		}

		return nil, errors.Wrap(err, "failed to find business")
	}

	return business, nil
}

func applyBusinessInput(business *entity.Business, input usecase.BusinessInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("business name must be set"), "invalid business")
	}
	if utf8.RuneCountInString(name) > maxBusinessNameLength {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("business name is too long"), "invalid business")
	}

	business.Name = name
	business.Address = strings.TrimSpace(input.Address)

	return nil
}
