package model

import (
	"encoding/json"
	"testing"
	"time"
)

// The bare order record is returned directly after checkout when the
// detail read-back fails, so its field names must match the snake_case
// of every other response shape.
func TestOrderJSONFieldNames(t *testing.T) {
	o := Order{ID: 9, UserID: 4, CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "user_id", "created_at"} {
		if _, ok := m[key]; !ok {
			t.Errorf("order JSON missing %q: %s", key, b)
		}
	}

	tb, err := json.Marshal(Ticket{ID: 1, CarNum: 2, SeatNum: 3, TripID: 4, OrderID: 9})
	if err != nil {
		t.Fatalf("marshal ticket: %v", err)
	}
	var tm map[string]interface{}
	if err := json.Unmarshal(tb, &tm); err != nil {
		t.Fatalf("unmarshal ticket: %v", err)
	}
	for _, key := range []string{"id", "car_num", "seat_num", "trip", "order"} {
		if _, ok := tm[key]; !ok {
			t.Errorf("ticket JSON missing %q: %s", key, tb)
		}
	}
}
