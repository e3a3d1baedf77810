package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/delivery/http/response"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	BusinessUC usecase.BusinessUsecase
	UserUC     usecase.UserUsecase
	Logger     *slog.Logger
}

// AdminHandler serves the admin console landing page.
type AdminHandler struct {
	businessUC usecase.BusinessUsecase
	userUC     usecase.UserUsecase
	logger     *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		businessUC: params.BusinessUC,
		userUC:     params.UserUC,
		logger:     params.Logger,
	}
}

// IndexResponse summarizes what the actor can see.
// Businesses is omitted when the actor may not view businesses.
type IndexResponse struct {
	Actor      UserResponse `json:"actor"`
	Businesses *int64       `json:"businesses,omitempty"`
	Users      int64        `json:"users"`
}

// Index returns the actor and the business and user counts in its scope.
func (h *AdminHandler) Index(c echo.Context) error {
	ctx := c.Request().Context()
	actor := deliverycontext.GetActor(c)

	users, err := h.userUC.Count(ctx, actor)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := IndexResponse{Actor: toUserResponse(actor), Users: users}

	businesses, err := h.businessUC.Count(ctx, actor)
	switch {
	case err == nil:
		out.Businesses = &businesses
	case !errors.Is(err, domainerrors.ErrForbidden):
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, out)
}
