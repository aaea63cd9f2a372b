package model

import "time"

// Train represents a physical train composed of a number of cars
// of a single carriage type.  TotalSeats is a stored attribute,
// not a computed one: it is recomputed from CarriagesQuantity and
// the carriage type's SeatsInCar on every write so that ticket
// validation reads stay a single lookup.
//
// Fields:
//  ID                – primary key identifier.
//  NameNumber        – train identifier such as "001T".
//  CarriagesQuantity – number of cars in the train, always positive.
//  CarriageTypeID    – reference to the carriage type of all cars.
//  TotalSeats        – CarriagesQuantity × CarriageType.SeatsInCar.
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Train struct {
	ID                uint64    `json:"id"`                 // trains.id
	NameNumber        string    `json:"name_number"`        // trains.name_number
	CarriagesQuantity uint32    `json:"carriages_quantity"` // trains.carriages_quantity
	CarriageTypeID    uint64    `json:"carriage_type"`      // trains.carriage_type_id
	TotalSeats        uint32    `json:"total_seats"`        // trains.total_seats
	CreatedAt         time.Time `json:"created_at"`         // trains.created_at
	UpdatedAt         time.Time `json:"updated_at"`         // trains.updated_at
}
