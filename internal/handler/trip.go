package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

// TripHandler serves trip scheduling and browsing endpoints.
type TripHandler struct {
	Trips *repository.TripRepo
}

// NewTripHandler constructs a TripHandler and panics if the repository
// is nil.
func NewTripHandler(trips *repository.TripRepo) *TripHandler {
	if trips == nil {
		panic("nil repository passed to NewTripHandler")
	}
	return &TripHandler{Trips: trips}
}

type tripBody struct {
	RouteID       uint64   `json:"route"`
	TrainID       uint64   `json:"train"`
	DepartureTime string   `json:"departure_time"`
	ArrivalTime   string   `json:"arrival_time"`
	CrewIDs       []uint64 `json:"crew"`
}

// tripWindowError returns the rejection message for an inverted time
// window, or "" when the window is valid. A departure equal to the
// arrival is allowed.
func tripWindowError(dep, arr time.Time) string {
	if dep.After(arr) {
		return fmt.Sprintf(
			"Departure time cannot be bigger than arrival time, check input parameters! Your departure_time - %s, arrival_time %s.",
			dep.Format(time.RFC3339), arr.Format(time.RFC3339))
	}
	return ""
}

// parse validates the body and returns the trip fields. The returned
// message is non-empty on rejection.
func (b *tripBody) parse() (model.Trip, []uint64, string) {
	var t model.Trip
	if b.RouteID == 0 {
		return t, nil, "route is required"
	}
	if b.TrainID == 0 {
		return t, nil, "train is required"
	}
	depRaw := strings.TrimSpace(b.DepartureTime)
	arrRaw := strings.TrimSpace(b.ArrivalTime)
	if depRaw == "" || arrRaw == "" {
		return t, nil, "departure_time and arrival_time are required"
	}
	dep, err := time.Parse(time.RFC3339, depRaw)
	if err != nil {
		return t, nil, "invalid departure_time format"
	}
	arr, err := time.Parse(time.RFC3339, arrRaw)
	if err != nil {
		return t, nil, "invalid arrival_time format"
	}
	if msg := tripWindowError(dep, arr); msg != "" {
		return t, nil, msg
	}
	t.RouteID = b.RouteID
	t.TrainID = b.TrainID
	t.DepartureTime = dep.UTC()
	t.ArrivalTime = arr.UTC()
	return t, b.CrewIDs, ""
}

// CreateTrip handles POST /v1/trips.
func (h *TripHandler) CreateTrip(c echo.Context) error {
	var body tripBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	t, crewIDs, msg := body.parse()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Trips.Create(c.Request().Context(), &t, crewIDs); err != nil {
		return c.JSON(tripWriteStatus(err), echo.Map{"error": tripWriteMessage(err)})
	}
	return c.JSON(http.StatusCreated, t)
}

// UpdateTrip handles PUT /v1/trips/:id. The crew set is replaced
// wholesale.
func (h *TripHandler) UpdateTrip(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body tripBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	t, crewIDs, msg := body.parse()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	t.ID = id
	if err := h.Trips.Update(c.Request().Context(), &t, crewIDs); err != nil {
		return c.JSON(tripWriteStatus(err), echo.Map{"error": tripWriteMessage(err)})
	}
	return c.JSON(http.StatusOK, t)
}

// DeleteTrip handles DELETE /v1/trips/:id. Tickets booked on the trip
// are removed by the FK cascade.
func (h *TripHandler) DeleteTrip(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Trips.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrTripNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListTrips handles GET /v1/trips. Each row carries the remaining seat
// count. Filters: ?city=, ?source=, ?destination=, ?train=, ?crew=,
// ?date=, ?dep=, ?arr= — all comma-separated lists.
func (h *TripHandler) ListTrips(c echo.Context) error {
	f := repository.TripFilter{
		City:        c.QueryParam("city"),
		Source:      c.QueryParam("source"),
		Destination: c.QueryParam("destination"),
		Train:       c.QueryParam("train"),
		Crew:        c.QueryParam("crew"),
		Date:        c.QueryParam("date"),
		Dep:         c.QueryParam("dep"),
		Arr:         c.QueryParam("arr"),
	}
	items, err := h.Trips.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetTrip handles GET /v1/trips/:id. The response includes the route
// with station names, the train name, crew full names and the seat
// availability snapshot.
func (h *TripHandler) GetTrip(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	det, err := h.Trips.GetDetail(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrTripNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, det)
}

// tripWriteStatus maps trip create/update errors onto HTTP codes.
func tripWriteStatus(err error) int {
	switch err {
	case repository.ErrTripNotFound, repository.ErrRouteNotFound,
		repository.ErrTrainNotFound, repository.ErrCrewNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func tripWriteMessage(err error) string {
	switch err {
	case repository.ErrTripNotFound:
		return "trip not found"
	case repository.ErrRouteNotFound:
		return "route not found"
	case repository.ErrTrainNotFound:
		return "train not found"
	case repository.ErrCrewNotFound:
		return "crew member not found"
	}
	return "could not save trip"
}
