package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"healthhub/internal/model"
	"healthhub/internal/response"
)

// RequireRole returns middleware enforcing that the authenticated user's
// role is in the allow-set. A missing token yields 401; a valid token
// with a role outside the set yields 403, so "not logged in" and "not
// permitted" stay distinguishable.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, response.Error("unauthorized"))
			}
			if !allowed[claims.Role] {
				return c.JSON(http.StatusForbidden, response.Error("forbidden"))
			}
			return next(c)
		}
	}
}
