package handler

import (
	"log/slog"
	"net/http"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/delivery/http/response"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Config *config.Config
	Logger *slog.Logger
}

// UserHandler serves account administration for the admin console.
type UserHandler struct {
	userUC usecase.UserUsecase
	paging *config.AdminConfig
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		paging: params.Config.Admin,
		logger: params.Logger,
	}
}

// CreateUserRequest represents the body for creating an account.
// Omitted optional fields take the account defaults.
type CreateUserRequest struct {
	Email       string     `json:"email" validate:"required,email,max=254"`
	FullName    string     `json:"full_name" validate:"max=255"`
	Password    string     `json:"password"`
	Phone       *string    `json:"phone" validate:"omitempty,max=20"`
	BusinessID  *uuid.UUID `json:"business_id"`
	Role        *string    `json:"role" validate:"omitempty,role"`
	IsActive    *bool      `json:"is_active"`
	IsStaff     *bool      `json:"is_staff"`
	IsSuperuser *bool      `json:"is_superuser"`
}

func (r CreateUserRequest) toInput() usecase.CreateUserInput {
	input := usecase.CreateUserInput{
		Email:    r.Email,
		FullName: r.FullName,
		Password: r.Password,
		Extra: usecase.UserFields{
			Phone:       r.Phone,
			BusinessID:  r.BusinessID,
			IsActive:    r.IsActive,
			IsStaff:     r.IsStaff,
			IsSuperuser: r.IsSuperuser,
		},
	}
	if r.Role != nil {
		role := entity.Role(*r.Role)
		input.Extra.Role = &role
	}

	return input
}

// UpdateProfileRequest represents a partial profile update. An empty phone
// clears it and the nil UUID detaches the account from its business.
type UpdateProfileRequest struct {
	FullName   *string    `json:"full_name" validate:"omitempty,max=255"`
	Phone      *string    `json:"phone" validate:"omitempty,max=20"`
	BusinessID *uuid.UUID `json:"business_id"`
	IsActive   *bool      `json:"is_active"`
	IsStaff    *bool      `json:"is_staff"`
}

// ChangeRoleRequest represents the body of a role change.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,role"`
}

// SetPasswordRequest represents a password change. An empty password disables login.
type SetPasswordRequest struct {
	Password string `json:"password"`
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return c.Validate(req)
}

// List returns accounts, optionally filtered by business_id and role.
func (h *UserHandler) List(c echo.Context) error {
	page, err := pageFromQuery(c, h.paging)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var filter usecase.UserListFilter
	if raw := c.QueryParam("business_id"); raw != "" {
		businessID, err := uuid.Parse(raw)
		if err != nil {
			return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("business_id must be a UUID"))
		}
		filter.BusinessID = &businessID
	}
	if raw := c.QueryParam("role"); raw != "" {
		role, err := entity.ParseRole(raw)
		if err != nil {
			return response.HandleAppError(c, domainerrors.ErrInvalidRole.WithDetails(err.Error()))
		}
		filter.Role = &role
	}

	users, total, err := h.userUC.List(c.Request().Context(), deliverycontext.GetActor(c), filter, page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Page(c, toUserResponses(users), total, page.Limit, page.Offset)
}

// Create adds a regular account.
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.Create(c.Request().Context(), deliverycontext.GetActor(c), req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(user))
}

// CreateSuperuser adds a superuser account.
func (h *UserHandler) CreateSuperuser(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.CreateSuperuser(c.Request().Context(), deliverycontext.GetActor(c), req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(user))
}

// Get returns a single account.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.Get(c.Request().Context(), deliverycontext.GetActor(c), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

// UpdateProfile applies a partial profile update.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.UpdateProfile(c.Request().Context(), deliverycontext.GetActor(c), id, usecase.UpdateProfileInput{
		FullName:   req.FullName,
		Phone:      req.Phone,
		BusinessID: req.BusinessID,
		IsActive:   req.IsActive,
		IsStaff:    req.IsStaff,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

// ChangeRole sets the account's role.
func (h *UserHandler) ChangeRole(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ChangeRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.ChangeRole(c.Request().Context(), deliverycontext.GetActor(c), id, entity.Role(req.Role))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}

// SetPassword replaces the account's password.
func (h *UserHandler) SetPassword(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req SetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.userUC.SetPassword(c.Request().Context(), deliverycontext.GetActor(c), id, req.Password); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes an account.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.userUC.Delete(c.Request().Context(), deliverycontext.GetActor(c), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
