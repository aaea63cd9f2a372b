package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a stable string identity for rate-limit keys.
// JWTAuth stores the subject claim under "user_id"; JWT numeric claims
// decode as float64. Unauthenticated requests map to "anon".
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return "anon"
}
