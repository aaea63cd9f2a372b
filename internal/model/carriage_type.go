package model

import "time"

// CarriageType describes a class of railway car and how many
// passengers it can seat.  Trains reference a carriage type to
// derive their total capacity.  This struct corresponds to a row
// in the `carriage_types` table.
//
// Fields:
//  ID         – primary key identifier.
//  Category   – human readable class name (e.g. "coupe", "lux").
//  SeatsInCar – number of seats in a single car, always positive.
//  CreatedAt  – timestamp when the carriage type was created.
//  UpdatedAt  – timestamp of last update.
type CarriageType struct {
	ID         uint64    `json:"id"`           // carriage_types.id
	Category   string    `json:"category"`     // carriage_types.category
	SeatsInCar uint32    `json:"seats_in_car"` // carriage_types.seats_in_car
	CreatedAt  time.Time `json:"created_at"`   // carriage_types.created_at
	UpdatedAt  time.Time `json:"updated_at"`   // carriage_types.updated_at
}
