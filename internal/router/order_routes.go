package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/handler"
	"github.com/iliyamo/train-ticket-reservation/internal/middleware"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

// RegisterOrders registers order endpoints under /v1. Both roles may
// create and read; visibility is enforced per request by the order
// scope inside the handlers, not by routing.
func RegisterOrders(e *echo.Echo, h *handler.OrderHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(repository.RoleStaff, repository.RoleCustomer),
	)
	g.POST("/orders", h.CreateOrder)
	g.GET("/orders", h.ListOrders)
	g.GET("/orders/:id", h.GetOrder)
	g.DELETE("/orders/:id", h.DeleteOrder)
}
