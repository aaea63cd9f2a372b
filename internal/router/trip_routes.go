package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/handler"
	"github.com/iliyamo/train-ticket-reservation/internal/middleware"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

// RegisterTrips registers trip scheduling and browsing endpoints under
// /v1. Writes require STAFF. Trip detail is never cached: its
// availability snapshot must reflect the latest committed bookings.
func RegisterTrips(e *echo.Echo, h *handler.TripHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	if cacheMW == nil {
		cacheMW = noop
	}
	read := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(repository.RoleStaff, repository.RoleCustomer),
	)
	read.GET("/trips", h.ListTrips, cacheMW)
	read.GET("/trips/:id", h.GetTrip)

	write := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(repository.RoleStaff),
	)
	write.POST("/trips", h.CreateTrip)
	write.PUT("/trips/:id", h.UpdateTrip)
	write.DELETE("/trips/:id", h.DeleteTrip)
}
