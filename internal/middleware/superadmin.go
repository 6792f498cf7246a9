package middleware

import (
	"net/http"

	"fitops/internal/common"

	"github.com/labstack/echo/v4"
)

// RequireSuperAdmin gates the cross-tenant admin surface. It runs after
// JWTMiddleware and rejects callers whose scope is pinned to a single tenant.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			scope, ok := common.ScopeFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if !scope.SuperAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}
