// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/handler"
	"github.com/iliyamo/train-ticket-reservation/internal/middleware"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware. Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication: the handler accepts
	// either a bearer token or a refresh_token in the body.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(repository.RoleStaff, repository.RoleCustomer))
	auth.GET("/me", a.Me)

	// Alias outside the protected group so a refresh token alone can
	// terminate a session.
	e.POST("/v1/logout", a.Logout)
}

// noop is used in place of an absent optional middleware so routes can
// be registered uniformly.
func noop(next echo.HandlerFunc) echo.HandlerFunc { return next }
