// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// authorize fails with ErrForbidden unless actor holds perm.
func authorize(actor *entity.User, perm entity.Permission) error {
	if actor == nil {
		return errors.Wrap(domainerrors.ErrUnauthorized, "no authenticated actor")
	}
	if !actor.HasPerm(perm) {
		return errors.Wrapf(domainerrors.ErrForbidden, "missing permission %s", perm)
	}

	return nil
}

// businessScope returns the only business actor may see, or nil when the actor is unrestricted.
// A non-superuser without a business is scoped to uuid.Nil, which matches nothing.
func businessScope(actor *entity.User) *uuid.UUID {
	if actor.IsSuperuser {
		return nil
	}
	if actor.BusinessID == nil {
		scope := uuid.Nil

		return &scope
	}
	scope := *actor.BusinessID

	return &scope
}

func canAccessBusiness(actor *entity.User, businessID uuid.UUID) bool {
	return actor.IsSuperuser || actor.BelongsTo(businessID)
}

// canAccessUser reports whether actor may act on target. Tenant-less accounts
// and superusers are only reachable by superusers.
func canAccessUser(actor, target *entity.User) bool {
	if actor.IsSuperuser {
		return true
	}
	if target.IsSuperuser || target.BusinessID == nil {
		return false
	}

	return actor.BelongsTo(*target.BusinessID)
}

func forbidden(ctx context.Context, logger *slog.Logger, actor *entity.User, action string) error {
	logger.WarnContext(ctx, "Access denied", slog.String("action", action), slog.Any("actorID", actor.ID))

	return errors.Wrap(domainerrors.ErrForbidden, action)
}

func ptr[T any](v T) *T {
	return &v
}
