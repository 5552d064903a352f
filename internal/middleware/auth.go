package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"volunflow/internal/auth"
	"volunflow/internal/model"
)

const (
	userIDKey   = "userID"
	userRoleKey = "userRole"
)

// CurrentUser returns the verified subject id and role set by RequireRoles.
func CurrentUser(c echo.Context) (string, model.Role, bool) {
	id, ok := c.Get(userIDKey).(string)
	if !ok {
		return "", "", false
	}
	role, _ := c.Get(userRoleKey).(model.Role)
	return id, role, true
}

// RequireRoles guards a route with bearer-token verification and a
// required-role allow-list. The check order is part of the contract:
// missing credential → 401, non-bearer header → 400, invalid or expired
// token → 400, verified-but-wrong role → 403.
func RequireRoles(jwtService *auth.JWTService, allowed ...model.Role) echo.MiddlewareFunc {
	set := make(map[model.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)

			parts := strings.SplitN(header, " ", 2)
			if header == "" || len(parts) < 2 || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access Denied. No token provided.")
			}

			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusBadRequest, "Token format is incorrect.")
			}

			claims, err := jwtService.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}

			if _, ok := set[claims.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Access Denied. Insufficient Permissions")
			}

			c.Set(userIDKey, claims.UserID)
			c.Set(userRoleKey, claims.Role)
			return next(c)
		}
	}
}
