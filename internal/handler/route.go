package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

type routeBody struct {
	SourceStationID      uint64 `json:"source"`
	DestinationStationID uint64 `json:"destination"`
	Distance             uint32 `json:"distance"`
}

func (b *routeBody) validate() (string, bool) {
	if b.SourceStationID == 0 || b.DestinationStationID == 0 {
		return "source and destination are required", false
	}
	if b.Distance == 0 {
		return "distance must be positive", false
	}
	return "", true
}

// CreateRoute handles POST /v1/routes. Source and destination may be
// the same station; the schema leaves that unconstrained.
func (h *CatalogHandler) CreateRoute(c echo.Context) error {
	var body routeBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rt := &model.Route{
		SourceStationID:      body.SourceStationID,
		DestinationStationID: body.DestinationStationID,
		Distance:             body.Distance,
	}
	if err := h.Routes.Create(c.Request().Context(), rt); err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create route"})
	}
	return c.JSON(http.StatusCreated, rt)
}

// ListRoutes handles GET /v1/routes with the optional ?city=, ?source=
// and ?destination= filters. Each accepts a comma-separated list of
// substrings matched against station names; city matches either end.
func (h *CatalogHandler) ListRoutes(c echo.Context) error {
	f := repository.RouteFilter{
		City:        c.QueryParam("city"),
		Source:      c.QueryParam("source"),
		Destination: c.QueryParam("destination"),
	}
	items, err := h.Routes.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetRoute handles GET /v1/routes/:id.
func (h *CatalogHandler) GetRoute(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	rt, err := h.Routes.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, rt)
}

// UpdateRoute handles PUT /v1/routes/:id.
func (h *CatalogHandler) UpdateRoute(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body routeBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	rt := &model.Route{
		ID:                   id,
		SourceStationID:      body.SourceStationID,
		DestinationStationID: body.DestinationStationID,
		Distance:             body.Distance,
	}
	if err := h.Routes.Update(c.Request().Context(), rt); err != nil {
		switch err {
		case repository.ErrRouteNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		case repository.ErrStationNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, rt)
}

// DeleteRoute handles DELETE /v1/routes/:id. Trips scheduled on the
// route are removed by the FK cascade.
func (h *CatalogHandler) DeleteRoute(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Routes.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrRouteNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "route not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
