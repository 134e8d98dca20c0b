package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "healthhub/internal/errors"
	"healthhub/internal/middleware"
	"healthhub/internal/model"
	"healthhub/internal/response"
	"healthhub/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService    service.AuthService
	profileService service.ProfileService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, profileService service.ProfileService) *AuthHandler {
	return &AuthHandler{authService: authService, profileService: profileService}
}

// RegisterRequest represents a registration request. Profile fields are
// required unless the role is ADMIN; specialty and years of experience
// are required only for doctors.
type RegisterRequest struct {
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8,password_strength"`
	Role              string `json:"role" validate:"required,oneof=PATIENT DOCTOR ADMIN"`
	FirstName         string `json:"firstName" validate:"required_unless=Role ADMIN"`
	LastName          string `json:"lastName" validate:"required_unless=Role ADMIN"`
	DateOfBirth       string `json:"dateOfBirth" validate:"required_unless=Role ADMIN,omitempty,datetime=2006-01-02"`
	Gender            string `json:"gender" validate:"required_unless=Role ADMIN,omitempty,oneof=MALE FEMALE OTHER"`
	ContactNumber     string `json:"contactNumber" validate:"required_unless=Role ADMIN,omitempty,e164"`
	Address           string `json:"address" validate:"required_unless=Role ADMIN"`
	Specialty         string `json:"specialty" validate:"required_if=Role DOCTOR"`
	YearsOfExperience *int   `json:"yearsOfExperience" validate:"required_if=Role DOCTOR,omitempty,gte=0"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest represents a password-reset request.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest carries the replacement password. The reset token
// travels in the URL.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,password_strength"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user plus its role-specific profile and sends a verification email.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("validation failed", err.Error()))
	}

	input := service.RegisterInput{
		Email:         req.Email,
		Password:      req.Password,
		Role:          model.Role(req.Role),
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Gender:        model.Gender(req.Gender),
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Specialty:     req.Specialty,
	}
	if req.YearsOfExperience != nil {
		input.YearsOfExperience = *req.YearsOfExperience
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return c.JSON(http.StatusBadRequest, response.Error("validation failed", "dateOfBirth must be YYYY-MM-DD"))
		}
		input.DateOfBirth = dob
	}

	user, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusCreated, response.Success("user registered successfully", user))
}

// Login godoc
// @Summary User login
// @Description Validates credentials and returns a signed session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("validation failed", err.Error()))
	}

	accessToken, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, response.Success("login successful", echo.Map{
		"access_token": accessToken,
	}))
}

// VerifyEmail godoc
// @Summary Verify email
// @Description Consumes a single-use verification token from the emailed link.
// @Tags auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /auth/verify/{token} [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.Param("token")
	if err := h.authService.VerifyEmail(c.Request().Context(), token); err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, response.Success("email verified successfully", nil))
}

// ForgotPassword godoc
// @Summary Request password reset
// @Description Emails a short-lived reset link to the account owner.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("validation failed", err.Error()))
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, response.Success("password reset email sent", nil))
}

// ResetPassword godoc
// @Summary Reset password
// @Description Rotates the password authorized by a valid reset token.
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/reset-password/{token} [patch]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("validation failed", err.Error()))
	}

	if err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), req.NewPassword); err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, response.Success("password reset successfully", nil))
}

// Profile godoc
// @Summary Get own profile
// @Description Returns the role-shaped profile of the authenticated user.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, response.Error("unauthorized"))
	}

	profile, err := h.profileService.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return apperrors.MapErrorToHTTP(err)
	}
	return c.JSON(http.StatusOK, response.Success("profile retrieved successfully", profile))
}
