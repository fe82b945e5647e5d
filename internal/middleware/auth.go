package middleware

import (
	"net/http"
	"storefront-api/internal/service"
	"strings"

	"github.com/labstack/echo/v4"
)

const userIDKey = "user_id"

// UserID returns the authenticated user id set by AdminAuth.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// AdminAuth verifies the bearer token and requires an is_admin profile.
func AdminAuth(adminService service.AdminService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := adminService.VerifyToken(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return err
			}

			isAdmin, err := adminService.IsAdmin(c.Request().Context(), userID)
			if err != nil {
				return err
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}
