package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireRole(t *testing.T) {
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	cases := []struct {
		name       string
		allowed    []string
		role       interface{}
		wantStatus int
	}{
		{name: "allowed role", allowed: []string{"STAFF"}, role: "STAFF", wantStatus: http.StatusOK},
		{name: "either of two roles", allowed: []string{"STAFF", "CUSTOMER"}, role: "CUSTOMER", wantStatus: http.StatusOK},
		{name: "wrong role", allowed: []string{"STAFF"}, role: "CUSTOMER", wantStatus: http.StatusForbidden},
		{name: "missing role", allowed: []string{"STAFF"}, role: nil, wantStatus: http.StatusForbidden},
		{name: "non-string role", allowed: []string{"STAFF"}, role: 1, wantStatus: http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set("role", tc.role)
			}
			h := RequireRole(tc.allowed...)(ok)
			if err := h(c); err != nil {
				t.Fatalf("handler error = %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
