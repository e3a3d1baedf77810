package handler

import (
	"strconv"
	"time"

	"accounts/config"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BusinessResponse is the JSON form of a business.
type BusinessResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

func toBusinessResponse(b *entity.Business) BusinessResponse {
	return BusinessResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		CreatedAt: b.CreatedAt,
	}
}

// UserResponse is the JSON form of an account. The password hash is never exposed.
type UserResponse struct {
	ID                uuid.UUID  `json:"id"`
	Email             string     `json:"email"`
	FullName          string     `json:"full_name"`
	Phone             *string    `json:"phone,omitempty"`
	BusinessID        *uuid.UUID `json:"business_id,omitempty"`
	Role              string     `json:"role"`
	RoleLabel         string     `json:"role_label"`
	IsActive          bool       `json:"is_active"`
	IsStaff           bool       `json:"is_staff"`
	IsSuperuser       bool       `json:"is_superuser"`
	HasUsablePassword bool       `json:"has_usable_password"`
	DateJoined        time.Time  `json:"date_joined"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FullName:          u.FullName,
		Phone:             u.Phone,
		BusinessID:        u.BusinessID,
		Role:              u.Role.String(),
		RoleLabel:         u.Role.Label(),
		IsActive:          u.IsActive,
		IsStaff:           u.IsStaff,
		IsSuperuser:       u.IsSuperuser,
		HasUsablePassword: u.HasUsablePassword(),
		DateJoined:        u.DateJoined,
		LastLogin:         u.LastLogin,
	}
}

func toUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	return out
}

// pageFromQuery reads limit and offset, applying the configured default and cap.
func pageFromQuery(c echo.Context, cfg *config.AdminConfig) (repository.Page, error) {
	page := repository.Page{Limit: cfg.DefaultPageSize}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return page, domainerrors.ErrValidationFailed.WithDetails("limit must be a positive integer")
		}
		page.Limit = min(limit, cfg.MaxPageSize)
	}

	if raw := c.QueryParam("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return page, domainerrors.ErrValidationFailed.WithDetails("offset must be a non-negative integer")
		}
		page.Offset = offset
	}

	return page, nil
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("id must be a UUID")
	}

	return id, nil
}
