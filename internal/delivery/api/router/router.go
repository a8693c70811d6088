// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"passport/internal/delivery/api/middleware"
	"passport/internal/delivery/api/router/handler"
	"passport/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/api/v1/auth")
	{
		authGroup.POST("/login/:scheme", r.authHandler.Login)
		authGroup.POST("/code/:scheme", r.authHandler.SendCode)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/introspect", r.authHandler.Introspect)
	}

	// Routes that require a valid credential
	totpGroup := authGroup.Group("/totp")
	totpGroup.Use(r.authMiddleware.Authenticate)
	{
		totpGroup.POST("/enroll", r.authHandler.EnrollTOTP)
	}

	adminGroup := e.Group("/api/v1/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/token-types", r.authHandler.TokenTypes)
	}
}
