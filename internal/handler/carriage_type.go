package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

// CreateCarriageType handles POST /v1/carriage-types.
func (h *CatalogHandler) CreateCarriageType(c echo.Context) error {
	var body struct {
		Category   string `json:"category"`
		SeatsInCar uint32 `json:"seats_in_car"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	category := strings.TrimSpace(body.Category)
	if category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category is required"})
	}
	if body.SeatsInCar == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats_in_car must be positive"})
	}
	ct := &model.CarriageType{Category: category, SeatsInCar: body.SeatsInCar}
	if err := h.CarriageTypes.Create(c.Request().Context(), ct); err != nil {
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "carriage type already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create carriage type"})
	}
	return c.JSON(http.StatusCreated, ct)
}

// ListCarriageTypes handles GET /v1/carriage-types. The optional
// ?search= matches category or seat count as a substring.
func (h *CatalogHandler) ListCarriageTypes(c echo.Context) error {
	items, err := h.CarriageTypes.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetCarriageType handles GET /v1/carriage-types/:id.
func (h *CatalogHandler) GetCarriageType(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ct, err := h.CarriageTypes.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrCarriageTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "carriage type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, ct)
}

// UpdateCarriageType handles PUT /v1/carriage-types/:id. Trains built
// from this type keep their stored total_seats until their next write.
func (h *CatalogHandler) UpdateCarriageType(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Category   string `json:"category"`
		SeatsInCar uint32 `json:"seats_in_car"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	category := strings.TrimSpace(body.Category)
	if category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category is required"})
	}
	if body.SeatsInCar == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seats_in_car must be positive"})
	}
	ct := &model.CarriageType{ID: id, Category: category, SeatsInCar: body.SeatsInCar}
	if err := h.CarriageTypes.Update(c.Request().Context(), ct); err != nil {
		if err == repository.ErrCarriageTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "carriage type not found"})
		}
		if strings.Contains(err.Error(), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "carriage type already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, ct)
}

// DeleteCarriageType handles DELETE /v1/carriage-types/:id.
func (h *CatalogHandler) DeleteCarriageType(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.CarriageTypes.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrCarriageTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "carriage type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
