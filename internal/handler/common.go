// Package handler contains the HTTP handlers of the reservation API.
// Handlers bind and validate request input, delegate persistence to the
// repository layer and translate sentinel errors into HTTP responses.
package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-ticket-reservation/internal/repository"
)

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64. JWT numeric claims arrive as float64; other
// representations are accepted for robustness.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// isStaff reports whether the authenticated caller carries the STAFF
// role claim.
func isStaff(c echo.Context) bool {
	role, ok := c.Get("role").(string)
	return ok && role == repository.RoleStaff
}

// pathID parses the :id path parameter. Zero is treated as invalid
// because no table uses zero as a primary key.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
