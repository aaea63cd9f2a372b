package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

type trainBody struct {
	NameNumber        string `json:"name_number"`
	CarriagesQuantity uint32 `json:"carriages_quantity"`
	CarriageTypeID    uint64 `json:"carriage_type"`
}

func (b *trainBody) validate() (string, bool) {
	b.NameNumber = strings.TrimSpace(b.NameNumber)
	if b.NameNumber == "" {
		return "name_number is required", false
	}
	if b.CarriagesQuantity == 0 {
		return "carriages_quantity must be positive", false
	}
	if b.CarriageTypeID == 0 {
		return "carriage_type is required", false
	}
	return "", true
}

// CreateTrain handles POST /v1/trains. total_seats is recomputed from
// the carriage type inside the repository transaction.
func (h *CatalogHandler) CreateTrain(c echo.Context) error {
	var body trainBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	t := &model.Train{
		NameNumber:        body.NameNumber,
		CarriagesQuantity: body.CarriagesQuantity,
		CarriageTypeID:    body.CarriageTypeID,
	}
	if err := h.Trains.Create(c.Request().Context(), t); err != nil {
		if err == repository.ErrCarriageTypeNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "carriage type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create train"})
	}
	return c.JSON(http.StatusCreated, t)
}

// ListTrains handles GET /v1/trains. The optional ?search= matches the
// train name as a substring.
func (h *CatalogHandler) ListTrains(c echo.Context) error {
	items, err := h.Trains.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetTrain handles GET /v1/trains/:id.
func (h *CatalogHandler) GetTrain(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Trains.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrTrainNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, t)
}

// UpdateTrain handles PUT /v1/trains/:id. The stored capacity is
// recomputed on every write, even when only the name changed.
func (h *CatalogHandler) UpdateTrain(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body trainBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := body.validate(); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	t := &model.Train{
		ID:                id,
		NameNumber:        body.NameNumber,
		CarriagesQuantity: body.CarriagesQuantity,
		CarriageTypeID:    body.CarriageTypeID,
	}
	if err := h.Trains.Update(c.Request().Context(), t); err != nil {
		switch err {
		case repository.ErrTrainNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		case repository.ErrCarriageTypeNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "carriage type not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteTrain handles DELETE /v1/trains/:id. Trips scheduled on the
// train are removed by the FK cascade.
func (h *CatalogHandler) DeleteTrain(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Trains.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrTrainNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "train not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
