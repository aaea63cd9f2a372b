package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/booking"
	"github.com/iliyamo/train-ticket-reservation/internal/model"
	"github.com/iliyamo/train-ticket-reservation/internal/queue"
	"github.com/iliyamo/train-ticket-reservation/internal/repository"
	queuepublisher "github.com/iliyamo/train-ticket-reservation/internal/service"
)

// OrderHandler serves order creation, listing and cancellation. Order
// creation is the only multi-statement write in the system: every
// ticket of an order commits atomically or not at all.
type OrderHandler struct {
	Orders *repository.OrderRepo
	Trips  *repository.TripRepo
}

// NewOrderHandler constructs an OrderHandler and panics if any
// dependency is nil.
func NewOrderHandler(orders *repository.OrderRepo, trips *repository.TripRepo) *OrderHandler {
	if orders == nil || trips == nil {
		panic("nil repository passed to NewOrderHandler")
	}
	return &OrderHandler{Orders: orders, Trips: trips}
}

// CreateOrder handles POST /v1/orders. The body carries a list of
// ticket requests, each naming a trip, car and seat. Validation and
// the pre-insert seat checks run inside one transaction; the unique
// key on (trip_id, car_num, seat_num) remains the final arbiter, so a
// race lost at insert time surfaces as the same conflict response as
// a seat found taken by the locked pre-check.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Tickets []booking.TicketRequest `json:"tickets"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if idx, err := booking.CheckRequests(body.Tickets); err != nil {
		var ve *booking.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": booking.MsgSeatTaken, "ticket": idx})
	}

	ctx := c.Request().Context()
	tx, err := h.Orders.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// One seat plan lookup per distinct trip in the order.
	plans := make(map[uint64]booking.SeatPlan, len(body.Tickets))
	for i, req := range body.Tickets {
		plan, ok := plans[req.TripID]
		if !ok {
			plan, err = h.Trips.SeatPlanTx(ctx, tx, req.TripID)
			if err != nil {
				if err == repository.ErrTripNotFound {
					return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found", "ticket": i})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve trip"})
			}
			plans[req.TripID] = plan
		}
		if err := booking.ValidateSeat(req, plan); err != nil {
			var ve *booking.ValidationError
			if errors.As(err, &ve) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message, "field": ve.Field, "ticket": i})
			}
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error(), "ticket": i})
		}
		taken, err := h.Trips.SeatTakenTx(ctx, tx, req.TripID, uint32(req.CarNum), uint32(req.SeatNum))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check seat availability"})
		}
		if taken {
			return c.JSON(http.StatusConflict, echo.Map{"error": booking.MsgSeatTaken, "ticket": i})
		}
	}

	order := &model.Order{UserID: userID}
	if err := h.Orders.CreateTx(ctx, tx, order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create order"})
	}
	tickets := make([]model.Ticket, 0, len(body.Tickets))
	for _, req := range body.Tickets {
		tickets = append(tickets, model.Ticket{
			CarNum:  uint32(req.CarNum),
			SeatNum: uint32(req.SeatNum),
			TripID:  req.TripID,
			OrderID: order.ID,
		})
	}
	if err := h.Orders.CreateTicketsBulkTx(ctx, tx, tickets); err != nil {
		if err == repository.ErrSeatTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": booking.MsgSeatTaken})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create tickets"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	scope := repository.NewOrderScope(userID, isStaff(c), "")
	det, err := h.Orders.GetByID(ctx, scope, order.ID)
	if err != nil {
		// The order committed; fall back to the bare record.
		return c.JSON(http.StatusCreated, order)
	}
	go publishOrderCreated(det)
	return c.JSON(http.StatusCreated, det)
}

// ListOrders handles GET /v1/orders. Customers see only their own
// orders; staff see all and may narrow by ?user= owner-email
// substring. A ?user= passed by a non-staff caller is discarded.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	scope := repository.NewOrderScope(userID, isStaff(c), c.QueryParam("user"))
	items, err := h.Orders.List(c.Request().Context(), scope)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load orders"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetOrder handles GET /v1/orders/:id. A customer asking for another
// user's order gets the same 404 as for a missing one.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	scope := repository.NewOrderScope(userID, isStaff(c), "")
	det, err := h.Orders.GetByID(c.Request().Context(), scope, id)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch order"})
	}
	return c.JSON(http.StatusOK, det)
}

// DeleteOrder handles DELETE /v1/orders/:id. Cancelling an order frees
// its seats through the FK cascade on tickets.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	scope := repository.NewOrderScope(userID, isStaff(c), "")
	if err := h.Orders.Delete(c.Request().Context(), scope, id); err != nil {
		if err == repository.ErrOrderNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete order"})
	}
	return c.NoContent(http.StatusNoContent)
}

// publishOrderCreated pushes the order.created event to the broker.
// Best-effort: the order already committed, so a broker outage only
// costs the log line.
func publishOrderCreated(det *repository.OrderDetail) {
	ev := queue.OrderCreatedEvent{
		OrderID:   det.ID,
		UserID:    det.UserID,
		UserEmail: det.CreatedBy,
		CreatedAt: det.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, t := range det.Tickets {
		ev.Tickets = append(ev.Tickets, queue.OrderCreatedTicket{
			TripID:      t.TripID,
			CarNum:      t.CarNum,
			SeatNum:     t.SeatNum,
			FromStation: t.FromStation,
			ToStation:   t.ToStation,
			Train:       t.Train,
		})
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = queuepublisher.PublishOrderCreated(ctx, ev)
}
