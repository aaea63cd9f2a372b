// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to read an order owned by someone else, while
// ErrSeatTaken signals that a requested seat triple is already
// booked and the order cannot proceed.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrSeatTaken is returned when an order's ticket insert collides
// with an existing ticket on the same (trip, car, seat) triple,
// either via the locked pre-insert check or via the unique key at
// insert time. Handlers translate it into an HTTP 409 response.
var ErrSeatTaken = errors.New("seat already taken")

// Not-found sentinels, one per referenced entity so handlers can
// name the missing resource in the response.
var (
	ErrCarriageTypeNotFound = errors.New("carriage type not found")
	ErrTrainNotFound        = errors.New("train not found")
	ErrStationNotFound      = errors.New("station not found")
	ErrRouteNotFound        = errors.New("route not found")
	ErrCrewNotFound         = errors.New("crew member not found")
	ErrTripNotFound         = errors.New("trip not found")
	ErrOrderNotFound        = errors.New("order not found")
)

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (errno 1062). Repositories use it to map unique-key violations onto
// domain sentinels instead of leaking driver errors upward.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// isDeadlock reports whether err is a MySQL deadlock rollback (errno
// 1213). Two concurrent bookings of a free seat triple hold compatible
// gap locks from their FOR UPDATE pre-checks, so the losing insert can
// come back as a deadlock instead of a duplicate entry.
func isDeadlock(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1213")
}
