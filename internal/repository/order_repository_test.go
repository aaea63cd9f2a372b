package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/iliyamo/train-ticket-reservation/internal/model"
)

func TestDriverErrorClassification(t *testing.T) {
	dup := errors.New("Error 1062 (23000): Duplicate entry '3-1-1' for key 'tickets.uniq_trip_car_seat'")
	dead := errors.New("Error 1213 (40001): Deadlock found when trying to get lock; try restarting transaction")
	other := errors.New("Error 1205 (HY000): Lock wait timeout exceeded")

	if !isDuplicateKey(dup) || isDuplicateKey(dead) || isDuplicateKey(nil) {
		t.Error("isDuplicateKey misclassifies")
	}
	if !isDeadlock(dead) || isDeadlock(dup) || isDeadlock(other) || isDeadlock(nil) {
		t.Error("isDeadlock misclassifies")
	}
}

// Two transactions racing for the same free seat triple hold
// compatible gap locks, so the losing insert can fail with a deadlock
// rollback instead of a duplicate entry. Both must surface as
// ErrSeatTaken so the caller answers with the conflict response.
func TestCreateTicketsBulkTxMapsConflicts(t *testing.T) {
	cases := []struct {
		name    string
		drv     string
		execErr error
		want    error
	}{
		{
			name:    "duplicate entry",
			drv:     "tickets-stub-1062",
			execErr: errors.New("Error 1062 (23000): Duplicate entry '3-1-1' for key 'tickets.uniq_trip_car_seat'"),
			want:    ErrSeatTaken,
		},
		{
			name:    "deadlock rollback",
			drv:     "tickets-stub-1213",
			execErr: errors.New("Error 1213 (40001): Deadlock found when trying to get lock; try restarting transaction"),
			want:    ErrSeatTaken,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sql.Register(tc.drv, &stubDriver{conn: &stubConn{execErr: tc.execErr}})
			db, err := sql.Open(tc.drv, "")
			if err != nil {
				t.Fatalf("open stub db: %v", err)
			}
			defer db.Close()
			tx, err := db.Begin()
			if err != nil {
				t.Fatalf("begin: %v", err)
			}
			defer tx.Rollback()

			tickets := []model.Ticket{{CarNum: 1, SeatNum: 1, TripID: 3, OrderID: 1}}
			if err := NewOrderRepo(db).CreateTicketsBulkTx(context.Background(), tx, tickets); err != tc.want {
				t.Errorf("CreateTicketsBulkTx() = %v, want %v", err, tc.want)
			}
		})
	}
}
