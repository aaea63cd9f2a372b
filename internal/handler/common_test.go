package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserID(t *testing.T) {
	cases := []struct {
		name    string
		value   interface{}
		want    uint64
		wantErr bool
	}{
		{name: "float64 from jwt claims", value: float64(42), want: 42},
		{name: "uint64", value: uint64(7), want: 7},
		{name: "int", value: int(3), want: 3},
		{name: "numeric string", value: "19", want: 19},
		{name: "garbage string", value: "abc", wantErr: true},
		{name: "missing", value: nil, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext()
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			got, err := getUserID(c)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("getUserID() = %d, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("getUserID() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("getUserID() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestIsStaff(t *testing.T) {
	cases := []struct {
		name string
		role interface{}
		want bool
	}{
		{name: "staff", role: "STAFF", want: true},
		{name: "customer", role: "CUSTOMER", want: false},
		{name: "missing", role: nil, want: false},
		{name: "wrong type", role: 1, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext()
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			if got := isStaff(c); got != tc.want {
				t.Errorf("isStaff() = %v, want %v", got, tc.want)
			}
		})
	}
}
