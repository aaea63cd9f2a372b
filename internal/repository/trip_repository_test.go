package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"
)

// A train shrunk below its booked ticket count must list with zero
// availability, not fail the scan with a negative count.
func TestTripRepoListClampsOverbookedTrips(t *testing.T) {
	dep := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	arr := dep.Add(5 * time.Hour)
	conn := &stubConn{
		cols: []string{"id", "from", "dep", "to", "arr", "train", "total", "booked"},
		data: [][]driver.Value{
			{int64(1), "Kyiv", dep, "Lviv", arr, "IC-705", int64(4), int64(7)},
			{int64(2), "Kyiv", dep, "Odesa", arr, "IC-102", int64(200), int64(2)},
		},
	}
	sql.Register("triplist-stub", &stubDriver{conn: conn})
	db, err := sql.Open("triplist-stub", "")
	if err != nil {
		t.Fatalf("open stub db: %v", err)
	}
	defer db.Close()

	rows, err := NewTripRepo(db).List(context.Background(), TripFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("List() returned %d rows, want 2", len(rows))
	}
	if rows[0].SeatsAvailable != 0 {
		t.Errorf("overbooked trip seats_available = %d, want 0", rows[0].SeatsAvailable)
	}
	if rows[1].SeatsAvailable != 198 {
		t.Errorf("seats_available = %d, want 198", rows[1].SeatsAvailable)
	}
}
