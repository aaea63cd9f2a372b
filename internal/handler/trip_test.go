package handler

import (
	"testing"
	"time"
)

func TestTripWindowError(t *testing.T) {
	dep := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		dep  time.Time
		arr  time.Time
		want string
	}{
		{
			name: "departure before arrival",
			dep:  dep,
			arr:  dep.Add(2 * time.Hour),
			want: "",
		},
		{
			name: "departure equals arrival",
			dep:  dep,
			arr:  dep,
			want: "",
		},
		{
			name: "departure after arrival",
			dep:  dep,
			arr:  dep.Add(-time.Hour),
			want: "Departure time cannot be bigger than arrival time, check input parameters! " +
				"Your departure_time - 2025-06-01T10:00:00Z, arrival_time 2025-06-01T09:00:00Z.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tripWindowError(tc.dep, tc.arr); got != tc.want {
				t.Errorf("tripWindowError() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTripBodyParse(t *testing.T) {
	cases := []struct {
		name    string
		body    tripBody
		wantMsg string
	}{
		{
			name: "valid",
			body: tripBody{
				RouteID:       1,
				TrainID:       2,
				DepartureTime: "2025-06-01T10:00:00Z",
				ArrivalTime:   "2025-06-01T18:30:00Z",
				CrewIDs:       []uint64{1, 2},
			},
		},
		{
			name:    "missing route",
			body:    tripBody{TrainID: 2, DepartureTime: "2025-06-01T10:00:00Z", ArrivalTime: "2025-06-01T18:30:00Z"},
			wantMsg: "route is required",
		},
		{
			name:    "missing train",
			body:    tripBody{RouteID: 1, DepartureTime: "2025-06-01T10:00:00Z", ArrivalTime: "2025-06-01T18:30:00Z"},
			wantMsg: "train is required",
		},
		{
			name:    "missing times",
			body:    tripBody{RouteID: 1, TrainID: 2},
			wantMsg: "departure_time and arrival_time are required",
		},
		{
			name:    "bad departure format",
			body:    tripBody{RouteID: 1, TrainID: 2, DepartureTime: "yesterday", ArrivalTime: "2025-06-01T18:30:00Z"},
			wantMsg: "invalid departure_time format",
		},
		{
			name: "inverted window",
			body: tripBody{RouteID: 1, TrainID: 2, DepartureTime: "2025-06-01T18:30:00Z", ArrivalTime: "2025-06-01T10:00:00Z"},
			wantMsg: "Departure time cannot be bigger than arrival time, check input parameters! " +
				"Your departure_time - 2025-06-01T18:30:00Z, arrival_time 2025-06-01T10:00:00Z.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trip, crew, msg := tc.body.parse()
			if msg != tc.wantMsg {
				t.Fatalf("parse() message = %q, want %q", msg, tc.wantMsg)
			}
			if tc.wantMsg != "" {
				return
			}
			if trip.RouteID != tc.body.RouteID || trip.TrainID != tc.body.TrainID {
				t.Errorf("parse() trip = %+v", trip)
			}
			if !trip.DepartureTime.Before(trip.ArrivalTime) {
				t.Errorf("departure %v not before arrival %v", trip.DepartureTime, trip.ArrivalTime)
			}
			if len(crew) != len(tc.body.CrewIDs) {
				t.Errorf("crew = %v, want %v", crew, tc.body.CrewIDs)
			}
		})
	}
}
