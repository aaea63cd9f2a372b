package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/handler"
	"github.com/iliyamo/train-ticket-reservation/internal/middleware"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

// RegisterCatalog registers the catalog endpoints under /v1. Reads
// require any authenticated role; writes require STAFF. The optional
// cacheMW is applied to list endpoints only, where the query string
// fully determines the response for every caller.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, cacheMW echo.MiddlewareFunc) {
	if cacheMW == nil {
		cacheMW = noop
	}
	read := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(repository.RoleStaff, repository.RoleCustomer),
	)
	read.GET("/carriage-types", h.ListCarriageTypes, cacheMW)
	read.GET("/carriage-types/:id", h.GetCarriageType)
	read.GET("/trains", h.ListTrains, cacheMW)
	read.GET("/trains/:id", h.GetTrain)
	read.GET("/stations", h.ListStations, cacheMW)
	read.GET("/stations/:id", h.GetStation)
	read.GET("/routes", h.ListRoutes, cacheMW)
	read.GET("/routes/:id", h.GetRoute)
	read.GET("/crews", h.ListCrews, cacheMW)
	read.GET("/crews/:id", h.GetCrew)

	write := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(repository.RoleStaff),
	)
	write.POST("/carriage-types", h.CreateCarriageType)
	write.PUT("/carriage-types/:id", h.UpdateCarriageType)
	write.DELETE("/carriage-types/:id", h.DeleteCarriageType)
	write.POST("/trains", h.CreateTrain)
	write.PUT("/trains/:id", h.UpdateTrain)
	write.DELETE("/trains/:id", h.DeleteTrain)
	write.POST("/stations", h.CreateStation)
	write.PUT("/stations/:id", h.UpdateStation)
	write.DELETE("/stations/:id", h.DeleteStation)
	write.POST("/routes", h.CreateRoute)
	write.PUT("/routes/:id", h.UpdateRoute)
	write.DELETE("/routes/:id", h.DeleteRoute)
	write.POST("/crews", h.CreateCrew)
	write.PUT("/crews/:id", h.UpdateCrew)
	write.DELETE("/crews/:id", h.DeleteCrew)
}
