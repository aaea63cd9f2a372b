package model

import "time"

// Crew is a member of train staff who can be assigned to trips.
// A crew member may serve on any number of trips via the
// `trip_crew` relation.
//
// Fields:
//  ID        – primary key identifier.
//  FirstName – given name.
//  LastName  – family name.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Crew struct {
	ID        uint64    `json:"id"`         // crews.id
	FirstName string    `json:"first_name"` // crews.first_name
	LastName  string    `json:"last_name"`  // crews.last_name
	CreatedAt time.Time `json:"created_at"` // crews.created_at
	UpdatedAt time.Time `json:"updated_at"` // crews.updated_at
}

// FullName returns the display name used in trip listings.
func (c Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}
