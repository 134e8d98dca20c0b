package router

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"healthhub/internal/auth"
	"healthhub/internal/config"
	apperrors "healthhub/internal/errors"
	"healthhub/internal/handler"
	"healthhub/internal/middleware"
	"healthhub/internal/model"
	"healthhub/internal/response"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = NewValidator()
	e.HTTPErrorHandler = envelopeErrorHandler(log)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/forgot-password", authHandler.ForgotPassword)
	api.GET("/auth/verify/:token", authHandler.VerifyEmail)
	api.PATCH("/auth/reset-password/:token", authHandler.ResetPassword)

	// Routes requiring a valid session token
	authenticated := api.Group("", middleware.Authenticate(jwtService))
	authenticated.GET("/auth/profile", authHandler.Profile)

	users := authenticated.Group("/users")
	users.GET("/patient-data", userHandler.PatientData, middleware.RequireRole(model.RolePatient))
	users.GET("/doctor-data", userHandler.DoctorData, middleware.RequireRole(model.RoleDoctor))
	users.GET("/admin-data", userHandler.AdminData, middleware.RequireRole(model.RoleAdmin))
	users.GET("", userHandler.ListUsers, middleware.RequireRole(model.RoleAdmin))
	users.GET("/:id", userHandler.GetUser, middleware.RequireRole(model.RoleAdmin))
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator builds the request validator with the password strength rule.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("password_strength", passwordStrength)
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// passwordStrength requires at least one uppercase letter, one lowercase
// letter, one digit and one special character.
func passwordStrength(fl validator.FieldLevel) bool {
	var upper, lower, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune("@$!%*?&#^", r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// envelopeErrorHandler converts any error escaping a handler into the
// uniform response envelope. Unexpected failures are masked from the
// caller and logged with full detail.
func envelopeErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *apperrors.HTTPError
		var echoErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.StatusCode
			message = appErr.Message
		case errors.As(err, &echoErr):
			status = echoErr.Code
			if m, ok := echoErr.Message.(string); ok {
				message = m
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, response.Error(message))
	}
}
