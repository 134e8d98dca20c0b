package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"healthhub/internal/auth"
	"healthhub/internal/response"
)

// ClaimsContextKey is where Authenticate stores the verified *auth.Claims.
const ClaimsContextKey = "user"

// Authenticate returns middleware that rejects requests without a valid
// bearer session token before the handler runs. Verification is purely
// signature + expiry; the store is never consulted.
func Authenticate(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateAccessToken(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, response.Error("unauthorized"))
		},
	})
}

// ClaimsFrom extracts the verified claims stored by Authenticate.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*auth.Claims)
	return claims, ok
}
