package auth

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// RoleChecker reports whether a user holds the administrator role. The
// identity service implements it; the indirection keeps this package
// free of a store dependency.
type RoleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAdmin returns middleware gating privileged routes. It must be
// composed after the Verifier middleware: the subject email is read
// from the request context and looked up through the checker. An
// unknown user counts as non-admin.
func RequireAdmin(rc RoleChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email := EmailFromContext(c.Request().Context())
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authenticated subject")
			}

			isAdmin, err := rc.IsAdmin(c.Request().Context(), email)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "role lookup failed")
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
			}

			return next(c)
		}
	}
}
