package booking

import (
	"encoding/json"
	"errors"
	"testing"
)

// A negative car or seat number must decode instead of failing the
// bind, so the range message can echo the offending value.
func TestTicketRequestDecodesNegativeValues(t *testing.T) {
	var req TicketRequest
	if err := json.Unmarshal([]byte(`{"trip":1,"car_num":-1,"seat_num":-7}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.TripID != 1 || req.CarNum != -1 || req.SeatNum != -7 {
		t.Errorf("decoded %+v, want {1 -1 -7}", req)
	}
	err := ValidateSeat(req, SeatPlan{CarriagesQuantity: 4, SeatsInCar: 50})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("ValidateSeat() = %v, want *ValidationError", err)
	}
	if ve.Message != "carriage number must be in range [1, 4] not -1" {
		t.Errorf("Message = %q", ve.Message)
	}
}

func TestValidateSeat(t *testing.T) {
	plan := SeatPlan{CarriagesQuantity: 4, SeatsInCar: 50}

	cases := []struct {
		name      string
		req       TicketRequest
		wantField string
		wantMsg   string
	}{
		{
			name: "valid seat",
			req:  TicketRequest{TripID: 1, CarNum: 1, SeatNum: 1},
		},
		{
			name: "valid last seat",
			req:  TicketRequest{TripID: 1, CarNum: 4, SeatNum: 50},
		},
		{
			name:      "car above range",
			req:       TicketRequest{TripID: 1, CarNum: 5, SeatNum: 1},
			wantField: "car_num",
			wantMsg:   "carriage number must be in range [1, 4] not 5",
		},
		{
			name:      "car zero",
			req:       TicketRequest{TripID: 1, CarNum: 0, SeatNum: 1},
			wantField: "car_num",
			wantMsg:   "carriage number must be in range [1, 4] not 0",
		},
		{
			name:      "seat above range",
			req:       TicketRequest{TripID: 1, CarNum: 1, SeatNum: 51},
			wantField: "seat_num",
			wantMsg:   "seat number must be in range [1, 50] not 51",
		},
		{
			name:      "seat zero",
			req:       TicketRequest{TripID: 1, CarNum: 1, SeatNum: 0},
			wantField: "seat_num",
			wantMsg:   "seat number must be in range [1, 50] not 0",
		},
		{
			name:      "car checked before seat",
			req:       TicketRequest{TripID: 1, CarNum: 9, SeatNum: 99},
			wantField: "car_num",
			wantMsg:   "carriage number must be in range [1, 4] not 9",
		},
		{
			name:      "negative car echoed in message",
			req:       TicketRequest{TripID: 1, CarNum: -1, SeatNum: 1},
			wantField: "car_num",
			wantMsg:   "carriage number must be in range [1, 4] not -1",
		},
		{
			name:      "negative seat echoed in message",
			req:       TicketRequest{TripID: 1, CarNum: 1, SeatNum: -7},
			wantField: "seat_num",
			wantMsg:   "seat number must be in range [1, 50] not -7",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSeat(tc.req, plan)
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateSeat() = %v, want nil", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ValidateSeat() = %v, want *ValidationError", err)
			}
			if ve.Field != tc.wantField {
				t.Errorf("Field = %q, want %q", ve.Field, tc.wantField)
			}
			if ve.Message != tc.wantMsg {
				t.Errorf("Message = %q, want %q", ve.Message, tc.wantMsg)
			}
		})
	}
}

func TestCheckRequests(t *testing.T) {
	t.Run("empty order", func(t *testing.T) {
		_, err := CheckRequests(nil)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("CheckRequests(nil) = %v, want *ValidationError", err)
		}
		if ve.Message != MsgEmptyOrder {
			t.Errorf("Message = %q, want %q", ve.Message, MsgEmptyOrder)
		}
	})

	t.Run("duplicate triple reports index", func(t *testing.T) {
		reqs := []TicketRequest{
			{TripID: 1, CarNum: 1, SeatNum: 1},
			{TripID: 1, CarNum: 1, SeatNum: 2},
			{TripID: 1, CarNum: 1, SeatNum: 1},
		}
		idx, err := CheckRequests(reqs)
		var ce *ConflictError
		if !errors.As(err, &ce) {
			t.Fatalf("CheckRequests() = %v, want *ConflictError", err)
		}
		if idx != 2 {
			t.Errorf("index = %d, want 2", idx)
		}
		if err.Error() != MsgSeatTaken {
			t.Errorf("Error() = %q, want %q", err.Error(), MsgSeatTaken)
		}
	})

	t.Run("same seat on different trips is fine", func(t *testing.T) {
		reqs := []TicketRequest{
			{TripID: 1, CarNum: 1, SeatNum: 1},
			{TripID: 2, CarNum: 1, SeatNum: 1},
		}
		if idx, err := CheckRequests(reqs); err != nil {
			t.Fatalf("CheckRequests() = (%d, %v), want nil error", idx, err)
		}
	})
}

func TestTotalSeats(t *testing.T) {
	cases := []struct {
		carriages, seats, want uint32
	}{
		{4, 50, 200},
		{1, 1, 1},
		{10, 36, 360},
		{0, 50, 0},
	}
	for _, tc := range cases {
		if got := TotalSeats(tc.carriages, tc.seats); got != tc.want {
			t.Errorf("TotalSeats(%d, %d) = %d, want %d", tc.carriages, tc.seats, got, tc.want)
		}
	}
}

func TestNewAvailability(t *testing.T) {
	cases := []struct {
		name          string
		total, booked uint32
		want          Availability
	}{
		{
			name:  "two of two hundred booked",
			total: 200, booked: 2,
			want: Availability{SeatsBooked: 2, SeatsAvailable: 198, TotalSeatsCapacity: 200},
		},
		{
			name:  "none booked",
			total: 200, booked: 0,
			want: Availability{SeatsBooked: 0, SeatsAvailable: 200, TotalSeatsCapacity: 200},
		},
		{
			name:  "sold out",
			total: 200, booked: 200,
			want: Availability{SeatsBooked: 200, SeatsAvailable: 0, TotalSeatsCapacity: 200},
		},
		{
			// A stale train capacity can undercount; availability must
			// clamp rather than wrap around.
			name:  "booked exceeds capacity",
			total: 10, booked: 12,
			want: Availability{SeatsBooked: 12, SeatsAvailable: 0, TotalSeatsCapacity: 10},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewAvailability(tc.total, tc.booked); got != tc.want {
				t.Errorf("NewAvailability(%d, %d) = %+v, want %+v", tc.total, tc.booked, got, tc.want)
			}
		})
	}
}

func TestValidationErrorString(t *testing.T) {
	ve := &ValidationError{Field: "car_num", Message: "carriage number must be in range [1, 4] not 5"}
	want := "car_num: carriage number must be in range [1, 4] not 5"
	if ve.Error() != want {
		t.Errorf("Error() = %q, want %q", ve.Error(), want)
	}
}
