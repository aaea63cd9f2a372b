package model

import "time"

// Station is a named point on the railway network with geographic
// coordinates.  Routes reference two stations: a source and a
// destination.  This struct corresponds to a row in the `stations`
// table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – station name.
//  Latitude  – geographic latitude.
//  Longitude – geographic longitude.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Station struct {
	ID        uint64    `json:"id"`         // stations.id
	Name      string    `json:"name"`       // stations.name
	Latitude  float64   `json:"latitude"`   // stations.latitude
	Longitude float64   `json:"longitude"`  // stations.longitude
	CreatedAt time.Time `json:"created_at"` // stations.created_at
	UpdatedAt time.Time `json:"updated_at"` // stations.updated_at
}
