package middleware

import (
	"net/http"

	"fitops/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTConfig builds the echo-jwt configuration. On success the verified
// claims are resolved into a TenantScope on the request context; handlers
// refuse any request whose context carries no scope.
func JWTConfig(jwtSecret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(jwtSecret),
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return
			}

			scope, ok := scopeFromClaims(claims)
			if !ok {
				return
			}
			c.SetRequest(c.Request().WithContext(common.WithScope(c.Request().Context(), scope)))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}

// JWTMiddleware is the tenant resolver gate: verify the bearer token, then
// resolve its claims into the caller's scope.
func JWTMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(JWTConfig(jwtSecret))
}

func scopeFromClaims(claims jwt.MapClaims) (common.TenantScope, bool) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return common.TenantScope{}, false
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return common.TenantScope{}, false
	}

	tenantClaim, ok := claims["tenant_id"].(string)
	if !ok {
		return common.TenantScope{}, false
	}
	tenantID, err := uuid.Parse(tenantClaim)
	if err != nil {
		return common.TenantScope{}, false
	}

	superAdmin, _ := claims["super_admin"].(bool)

	return common.TenantScope{
		TenantID:   tenantID,
		UserID:     userID,
		SuperAdmin: superAdmin,
	}, true
}
