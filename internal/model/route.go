package model

import "time"

// Route connects a source station to a destination station over a
// given distance.  Nothing prevents source and destination from
// being the same station; the schema mirrors the product decision
// to leave that unconstrained.  Deleting a route cascades to the
// trips scheduled on it.
//
// Fields:
//  ID                   – primary key identifier.
//  SourceStationID      – station the route departs from.
//  DestinationStationID – station the route arrives at.
//  Distance             – route length in kilometres, always positive.
//  CreatedAt            – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Route struct {
	ID                   uint64    `json:"id"`          // routes.id
	SourceStationID      uint64    `json:"source"`      // routes.source_station_id
	DestinationStationID uint64    `json:"destination"` // routes.destination_station_id
	Distance             uint32    `json:"distance"`    // routes.distance
	CreatedAt            time.Time `json:"created_at"`  // routes.created_at
	UpdatedAt            time.Time `json:"updated_at"`  // routes.updated_at
}
