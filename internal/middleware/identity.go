package middleware

// identity.go defines helper functions shared across middleware files. It
// provides a userID extraction function reading the claims JWTAuth stored in
// the Echo context. The auth service encodes the subject either as a string
// or a JSON number, so both are accepted. "anon" is returned when no user is
// authenticated.

import (
    "strconv"

    "github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the Echo context as a string,
// suitable for building per-user cache and rate-limit keys.
func userID(c echo.Context) string {
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
    case int:
        return strconv.Itoa(v)
    }
    return "anon"
}
