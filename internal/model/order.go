package model

import "time"

// Order records a user's single checkout event.  It bundles one or
// more tickets created together in one transaction.  Orders are
// immutable after creation and owned by exactly one user; deleting
// an order cascades to its tickets.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who placed the order.
//  CreatedAt – creation timestamp, set once and never updated.
type Order struct {
	ID        uint64    `json:"id"`         // orders.id
	UserID    uint64    `json:"user_id"`    // orders.user_id
	CreatedAt time.Time `json:"created_at"` // orders.created_at
}

// Ticket reserves one specific seat in one specific car on one
// specific trip.  The triple (trip_id, car_num, seat_num) carries a
// unique constraint in the database; that constraint is the
// system's central consistency invariant and the authoritative
// arbiter between concurrent bookings.
//
// Fields:
//  ID      – primary key identifier.
//  CarNum  – car number, in [1, train.carriages_quantity].
//  SeatNum – seat number, in [1, carriage_type.seats_in_car].
//  TripID  – trip the seat is booked on.
//  OrderID – owning order.
type Ticket struct {
	ID      uint64 `json:"id"`       // tickets.id
	CarNum  uint32 `json:"car_num"`  // tickets.car_num
	SeatNum uint32 `json:"seat_num"` // tickets.seat_num
	TripID  uint64 `json:"trip"`     // tickets.trip_id
	OrderID uint64 `json:"order"`    // tickets.order_id
}
