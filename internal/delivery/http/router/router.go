// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"strings"

	"accounts/config"
	"accounts/internal/delivery/http/middleware"
	"accounts/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler  *handler.SessionHandler
	AdminHandler    *handler.AdminHandler
	BusinessHandler *handler.BusinessHandler
	UserHandler     *handler.UserHandler
	StaticHandler   *handler.StaticHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Registry        *prometheus.Registry
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler  *handler.SessionHandler
	adminHandler    *handler.AdminHandler
	businessHandler *handler.BusinessHandler
	userHandler     *handler.UserHandler
	staticHandler   *handler.StaticHandler
	authMiddleware  *middleware.AuthMiddleware
	registry        *prometheus.Registry
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler:  params.SessionHandler,
		adminHandler:    params.AdminHandler,
		businessHandler: params.BusinessHandler,
		userHandler:     params.UserHandler,
		staticHandler:   params.StaticHandler,
		authMiddleware:  params.AuthMiddleware,
		registry:        params.Registry,
		config:          params.Config,
	}
}

// RegisterRoutes sets up all the routes of the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
			Registry: r.registry,
		})))
	}

	// Browsers ask for /favicon.ico at the root; the file lives with the other assets.
	e.GET("/favicon.ico", r.staticHandler.Favicon)

	staticPath := strings.TrimSuffix(r.staticHandler.Prefix(), "/") + "/*"
	e.GET(staticPath, r.staticHandler.Serve)
	e.HEAD(staticPath, r.staticHandler.Serve)

	r.registerAdminRoutes(e.Group("/admin"))
}

func (r *router) registerAdminRoutes(admin *echo.Group) {
	admin.POST("/login", r.sessionHandler.Login)

	console := admin.Group("", r.authMiddleware.Authenticate, r.authMiddleware.RequireStaff)
	{
		console.GET("/", r.adminHandler.Index)

		console.GET("/businesses", r.businessHandler.List)
		console.POST("/businesses", r.businessHandler.Create)
		console.GET("/businesses/:id", r.businessHandler.Get)
		console.PUT("/businesses/:id", r.businessHandler.Update)
		console.DELETE("/businesses/:id", r.businessHandler.Delete)

		console.GET("/users", r.userHandler.List)
		console.POST("/users", r.userHandler.Create)
		console.POST("/users/superusers", r.userHandler.CreateSuperuser)
		console.GET("/users/:id", r.userHandler.Get)
		console.PUT("/users/:id", r.userHandler.UpdateProfile)
		console.DELETE("/users/:id", r.userHandler.Delete)
		console.PUT("/users/:id/role", r.userHandler.ChangeRole)
		console.PUT("/users/:id/password", r.userHandler.SetPassword)
	}
}
