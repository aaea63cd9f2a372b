package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

type crewBody struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateCrew handles POST /v1/crews.
func (h *CatalogHandler) CreateCrew(c echo.Context) error {
	var body crewBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	first := strings.TrimSpace(body.FirstName)
	last := strings.TrimSpace(body.LastName)
	if first == "" || last == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}
	cr := &model.Crew{FirstName: first, LastName: last}
	if err := h.Crews.Create(c.Request().Context(), cr); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create crew member"})
	}
	return c.JSON(http.StatusCreated, cr)
}

// ListCrews handles GET /v1/crews. The optional ?search= matches first
// or last name as a substring.
func (h *CatalogHandler) ListCrews(c echo.Context) error {
	items, err := h.Crews.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetCrew handles GET /v1/crews/:id.
func (h *CatalogHandler) GetCrew(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cr, err := h.Crews.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrCrewNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "crew member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, cr)
}

// UpdateCrew handles PUT /v1/crews/:id.
func (h *CatalogHandler) UpdateCrew(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body crewBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	first := strings.TrimSpace(body.FirstName)
	last := strings.TrimSpace(body.LastName)
	if first == "" || last == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}
	cr := &model.Crew{ID: id, FirstName: first, LastName: last}
	if err := h.Crews.Update(c.Request().Context(), cr); err != nil {
		if err == repository.ErrCrewNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "crew member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, cr)
}

// DeleteCrew handles DELETE /v1/crews/:id. Trip assignments are
// removed by the FK cascade; the trips themselves stay.
func (h *CatalogHandler) DeleteCrew(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Crews.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrCrewNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "crew member not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
