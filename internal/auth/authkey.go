// Package auth checks the shared "authkey" credential used between the hub and its channels.
package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Scheme is the Authorization header scheme.
const Scheme = "authkey"

// UnauthorizedText is the response body for a rejected request.
const UnauthorizedText = "Invalid authorization"

// ErrUnauthorized reports a missing or wrong Authorization header.
var ErrUnauthorized = errors.New("invalid authorization")

// Header returns the Authorization header value for key.
func Header(key string) string {
	return Scheme + " " + key
}

// Check reports whether header is exactly "authkey <key>".
func Check(header, key string) bool {
	want := Header(key)
	return subtle.ConstantTimeCompare([]byte(header), []byte(want)) == 1
}

// Verify returns ErrUnauthorized unless r carries the channel key.
func Verify(r *http.Request, key string) error {
	values, ok := r.Header[echo.HeaderAuthorization]
	if !ok || len(values) == 0 || !Check(values[0], key) {
		return ErrUnauthorized
	}
	return nil
}

// KeyMiddleware rejects requests without the channel key with 400.
// Requests for which skipper returns true pass through.
func KeyMiddleware(key string, skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}
			if err := Verify(c.Request(), key); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, UnauthorizedText).SetInternal(err)
			}
			return next(c)
		}
	}
}
