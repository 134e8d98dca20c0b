package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"healthhub/internal/middleware"
	"healthhub/internal/response"
	"healthhub/internal/service"
)

// UserHandler bundles user listing and the role-gated data endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.Error("internal server error"))
	}
	return c.JSON(http.StatusOK, response.Success("users retrieved successfully", users))
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, response.Error("invalid id"))
	}
	user, err := h.svc.GetUser(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, response.Error("user not found"))
		}
		return c.JSON(http.StatusInternalServerError, response.Error("internal server error"))
	}
	return c.JSON(http.StatusOK, response.Success("user retrieved successfully", user))
}

// PatientData godoc
// @Summary Patient-only data
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users/patient-data [get]
func (h *UserHandler) PatientData(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	return c.JSON(http.StatusOK, response.Success("patient data retrieved successfully", echo.Map{
		"email": claims.Email,
		"role":  claims.Role,
	}))
}

// DoctorData godoc
// @Summary Doctor-only data
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users/doctor-data [get]
func (h *UserHandler) DoctorData(c echo.Context) error {
	claims, _ := middleware.ClaimsFrom(c)
	return c.JSON(http.StatusOK, response.Success("doctor data retrieved successfully", echo.Map{
		"email": claims.Email,
		"role":  claims.Role,
	}))
}

// AdminData godoc
// @Summary Admin-only data
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users/admin-data [get]
func (h *UserHandler) AdminData(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.Error("internal server error"))
	}
	return c.JSON(http.StatusOK, response.Success("admin data retrieved successfully", echo.Map{
		"users": users,
	}))
}
