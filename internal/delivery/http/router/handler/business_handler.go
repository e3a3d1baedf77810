package handler

import (
	"log/slog"
	"net/http"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/delivery/http/response"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BusinessHandlerParams holds dependencies for BusinessHandler, injected by Fx.
type BusinessHandlerParams struct {
	fx.In

	BusinessUC usecase.BusinessUsecase
	Config     *config.Config
	Logger     *slog.Logger
}

// BusinessHandler serves the tenant registry of the admin console.
type BusinessHandler struct {
	businessUC usecase.BusinessUsecase
	paging     *config.AdminConfig
	logger     *slog.Logger
}

// NewBusinessHandler is the constructor for BusinessHandler
func NewBusinessHandler(params BusinessHandlerParams) *BusinessHandler {
	return &BusinessHandler{
		businessUC: params.BusinessUC,
		paging:     params.Config.Admin,
		logger:     params.Logger,
	}
}

// BusinessRequest represents the body for creating or updating a business.
type BusinessRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address"`
}

func (h *BusinessHandler) bind(c echo.Context) (usecase.BusinessInput, error) {
	var req BusinessRequest
	if err := c.Bind(&req); err != nil {
		return usecase.BusinessInput{}, domainerrors.ErrValidationFailed.WithDetails("malformed business body")
	}
	if err := c.Validate(&req); err != nil {
		return usecase.BusinessInput{}, err
	}

	return usecase.BusinessInput{Name: req.Name, Address: req.Address}, nil
}

// List returns the businesses visible to the actor.
func (h *BusinessHandler) List(c echo.Context) error {
	page, err := pageFromQuery(c, h.paging)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	businesses, total, err := h.businessUC.List(c.Request().Context(), deliverycontext.GetActor(c), page)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out := make([]BusinessResponse, 0, len(businesses))
	for _, b := range businesses {
		out = append(out, toBusinessResponse(b))
	}

	return response.Page(c, out, total, page.Limit, page.Offset)
}

// Create adds a business.
func (h *BusinessHandler) Create(c echo.Context) error {
	input, err := h.bind(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	business, err := h.businessUC.Create(c.Request().Context(), deliverycontext.GetActor(c), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toBusinessResponse(business))
}

// Get returns a single business.
func (h *BusinessHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	business, err := h.businessUC.Get(c.Request().Context(), deliverycontext.GetActor(c), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toBusinessResponse(business))
}

// Update renames or re-addresses a business.
func (h *BusinessHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	input, err := h.bind(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	business, err := h.businessUC.Update(c.Request().Context(), deliverycontext.GetActor(c), id, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toBusinessResponse(business))
}

// Delete removes a business together with its users.
func (h *BusinessHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.businessUC.Delete(c.Request().Context(), deliverycontext.GetActor(c), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
