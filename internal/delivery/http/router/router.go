// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"accounts/internal/delivery/http/middleware"
	"accounts/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler    *handler.AccountHandler
	SessionMiddleware *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler    *handler.AccountHandler
	sessionMiddleware *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:    params.AccountHandler,
		sessionMiddleware: params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Signed-in callers are turned away.
	e.POST("/sign-up", r.accountHandler.SignUp, r.sessionMiddleware.RejectSignedIn)
	e.POST("/sign-in", r.accountHandler.SignIn, r.sessionMiddleware.RejectSignedIn)

	e.PUT("/edit", r.accountHandler.Edit, r.sessionMiddleware.RequireSession)
	e.DELETE("/delete", r.accountHandler.Delete, r.sessionMiddleware.RequireSession)
	e.GET("/users", r.accountHandler.ListUsers, r.sessionMiddleware.RequireSession)
}
