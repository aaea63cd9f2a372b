// Package booking holds the seat validation rules and capacity
// arithmetic used when creating orders. The functions here are pure:
// they operate on values resolved by the repository layer and return
// typed errors that handlers translate into HTTP responses. The
// storage layer's unique key on (trip_id, car_num, seat_num) remains
// the authoritative arbiter between concurrent bookings; these checks
// exist to produce precise client-facing messages before the insert.
package booking

import "fmt"

// MsgSeatTaken is the conflict message returned whenever a requested
// seat is already occupied, whether detected by the pre-insert check
// or by the duplicate-key error raised at insert time.
const MsgSeatTaken = "Booking prohibited! This place already taken!"

// MsgEmptyOrder rejects order requests that carry no tickets.
const MsgEmptyOrder = "orders must contain at least one ticket"

// TicketRequest names one seat on one trip that the caller wants to
// book. An order request is an ordered list of these. Car and seat are
// signed so an out-of-range negative value binds and gets echoed back
// in the range message instead of failing at decode time.
type TicketRequest struct {
	TripID  uint64 `json:"trip"`
	CarNum  int32  `json:"car_num"`
	SeatNum int32  `json:"seat_num"`
}

// SeatPlan carries the physical capacity of the train assigned to a
// trip: how many cars it has and how many seats each car holds. It is
// resolved once per ticket request inside the booking transaction.
type SeatPlan struct {
	CarriagesQuantity uint32
	SeatsInCar        uint32
}

// ValidationError reports a client input problem on a specific field.
// Message includes the valid range and the offending value so the
// caller can correct the request without guessing.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ConflictError signals that the requested seat triple is already
// booked. It is terminal for the whole order; nothing is retried.
type ConflictError struct{}

func (e *ConflictError) Error() string { return MsgSeatTaken }

// ValidateSeat checks one ticket request against the train's seat
// plan. Car numbers run from 1 to the number of cars, seat numbers
// from 1 to the seats in one car.
func ValidateSeat(req TicketRequest, plan SeatPlan) error {
	if req.CarNum < 1 || uint32(req.CarNum) > plan.CarriagesQuantity {
		return &ValidationError{
			Field:   "car_num",
			Message: fmt.Sprintf("carriage number must be in range [1, %d] not %d", plan.CarriagesQuantity, req.CarNum),
		}
	}
	if req.SeatNum < 1 || uint32(req.SeatNum) > plan.SeatsInCar {
		return &ValidationError{
			Field:   "seat_num",
			Message: fmt.Sprintf("seat number must be in range [1, %d] not %d", plan.SeatsInCar, req.SeatNum),
		}
	}
	return nil
}

// CheckRequests validates the shape of a whole order request: it must
// contain at least one ticket, and the same seat triple must not
// appear twice. A repeated triple would trip the unique key anyway,
// but catching it here names the offending sub-request. The returned
// index is -1 when the error is not tied to a single ticket.
func CheckRequests(reqs []TicketRequest) (int, error) {
	if len(reqs) == 0 {
		return -1, &ValidationError{Field: "tickets", Message: MsgEmptyOrder}
	}
	seen := make(map[TicketRequest]struct{}, len(reqs))
	for i, r := range reqs {
		if _, dup := seen[r]; dup {
			return i, &ConflictError{}
		}
		seen[r] = struct{}{}
	}
	return -1, nil
}

// TotalSeats derives a train's stored capacity from its car count and
// carriage type. Every train write persists this product; it is never
// derived lazily at read time.
func TotalSeats(carriagesQuantity, seatsInCar uint32) uint32 {
	return carriagesQuantity * seatsInCar
}

// Availability is the per-trip seat occupancy snapshot exposed on
// trip detail views and used for admission reporting.
type Availability struct {
	SeatsBooked        uint32 `json:"seats_booked"`
	SeatsAvailable     uint32 `json:"seats_available"`
	TotalSeatsCapacity uint32 `json:"total_seats_capacity"`
}

// Availability derives booked/available counts from a train's total
// capacity and the number of tickets currently persisted for the
// trip. Both values come from one SQL snapshot, so the pair always
// sums to the capacity within a single computation pass.
func NewAvailability(totalSeats, booked uint32) Availability {
	avail := uint32(0)
	if booked <= totalSeats {
		avail = totalSeats - booked
	}
	return Availability{
		SeatsBooked:        booked,
		SeatsAvailable:     avail,
		TotalSeatsCapacity: totalSeats,
	}
}
