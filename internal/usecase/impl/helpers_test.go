package impl

import (
	"io"
	"log/slog"
	"time"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSuperuser() *entity.User {
	return &entity.User{
		ID:          uuid.New(),
		Email:       "root@example.com",
		Role:        entity.RoleAdmin,
		IsActive:    true,
		IsStaff:     true,
		IsSuperuser: true,
	}
}

func newMember(businessID uuid.UUID, role entity.Role) *entity.User {
	return &entity.User{
		ID:         uuid.New(),
		Email:      uuid.NewString() + "@example.com",
		BusinessID: &businessID,
		Role:       role,
		IsActive:   true,
		IsStaff:    true,
	}
}
