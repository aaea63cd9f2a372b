package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

type stationBody struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateStation handles POST /v1/stations.
func (h *CatalogHandler) CreateStation(c echo.Context) error {
	var body stationBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	s := &model.Station{Name: name, Latitude: body.Latitude, Longitude: body.Longitude}
	if err := h.Stations.Create(c.Request().Context(), s); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "station already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create station"})
	}
	return c.JSON(http.StatusCreated, s)
}

// ListStations handles GET /v1/stations. The optional ?search= matches
// the station name as a substring.
func (h *CatalogHandler) ListStations(c echo.Context) error {
	items, err := h.Stations.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetStation handles GET /v1/stations/:id.
func (h *CatalogHandler) GetStation(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	s, err := h.Stations.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, s)
}

// UpdateStation handles PUT /v1/stations/:id.
func (h *CatalogHandler) UpdateStation(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body stationBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	s := &model.Station{ID: id, Name: name, Latitude: body.Latitude, Longitude: body.Longitude}
	if err := h.Stations.Update(c.Request().Context(), s); err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
		}
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "station already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, s)
}

// DeleteStation handles DELETE /v1/stations/:id. Routes referencing
// the station are removed by the FK cascade, along with their trips.
func (h *CatalogHandler) DeleteStation(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Stations.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrStationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
