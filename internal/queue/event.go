// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCreatedTicket describes one booked seat inside an OrderCreatedEvent,
// annotated with trip context so consumers need not query the database.
type OrderCreatedTicket struct {
	TripID      uint64 `json:"trip"`
	CarNum      uint32 `json:"car_num"`
	SeatNum     uint32 `json:"seat_num"`
	FromStation string `json:"from_station"`
	ToStation   string `json:"to_station"`
	Train       string `json:"train"`
}

// OrderCreatedEvent is published when an order commits with all of its
// tickets. It contains enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type OrderCreatedEvent struct {
	OrderID   uint64               `json:"order_id"`
	UserID    uint64               `json:"user_id"`
	UserEmail string               `json:"user_email"`
	Tickets   []OrderCreatedTicket `json:"tickets"`
	CreatedAt string               `json:"created_at"`
}
