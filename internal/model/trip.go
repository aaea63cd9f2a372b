package model

import "time"

// Trip is a scheduled run of a train over a route at a specific
// departure/arrival window, served by zero or more crew members.
// DepartureTime must never exceed ArrivalTime; that invariant is
// enforced at create and update time.  Deleting a trip cascades to
// its tickets.
//
// Fields:
//  ID            – primary key identifier.
//  RouteID       – route the trip runs over.
//  TrainID       – train assigned to the trip.
//  DepartureTime – when the trip departs (UTC).
//  ArrivalTime   – when the trip arrives (UTC), never before departure.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Trip struct {
	ID            uint64    `json:"id"`             // trips.id
	RouteID       uint64    `json:"route"`          // trips.route_id
	TrainID       uint64    `json:"train"`          // trips.train_id
	DepartureTime time.Time `json:"departure_time"` // trips.departure_time
	ArrivalTime   time.Time `json:"arrival_time"`   // trips.arrival_time
	CreatedAt     time.Time `json:"created_at"`     // trips.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // trips.updated_at
}
