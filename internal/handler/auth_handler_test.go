package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"healthhub/internal/auth"
	"healthhub/internal/config"
	apperrors "healthhub/internal/errors"
	"healthhub/internal/handler"
	"healthhub/internal/model"
	"healthhub/internal/response"
	"healthhub/internal/router"
	"healthhub/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input service.RegisterInput) (*model.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

// MockProfileService is a mock implementation of service.ProfileService.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uint) (service.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(service.Profile), args.Error(1)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

type testServer struct {
	echo       *echo.Echo
	authSvc    *MockAuthService
	profileSvc *MockProfileService
	userSvc    *MockUserService
	jwtService *auth.JWTService
}

func newTestServer() *testServer {
	authSvc := new(MockAuthService)
	profileSvc := new(MockProfileService)
	userSvc := new(MockUserService)
	jwtService := auth.NewJWTService("test-secret")

	e := echo.New()
	router.Register(e, &config.Config{}, zerolog.Nop(), jwtService,
		handler.NewAuthHandler(authSvc, profileSvc),
		handler.NewUserHandler(userSvc),
	)

	return &testServer{echo: e, authSvc: authSvc, profileSvc: profileSvc, userSvc: userSvc, jwtService: jwtService}
}

func (s *testServer) do(method, path, body, bearer string) (*httptest.ResponseRecorder, response.Envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var env response.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestRegisterEndpoint(t *testing.T) {
	t.Run("successful registration returns the public projection", func(t *testing.T) {
		s := newTestServer()
		s.authSvc.On("Register", mock.Anything, mock.MatchedBy(func(in service.RegisterInput) bool {
			return in.Email == "a@x.com" && in.Role == model.RolePatient
		})).Return(&model.User{ID: 1, Email: "a@x.com", Role: model.RolePatient}, nil)

		rec, env := s.do(http.MethodPost, "/api/auth/register", `{
			"email": "a@x.com",
			"password": "Passw0rd!",
			"role": "PATIENT",
			"firstName": "John",
			"lastName": "Doe",
			"dateOfBirth": "1990-01-01",
			"gender": "MALE",
			"contactNumber": "+1234567890",
			"address": "123 Main St"
		}`, "")

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "success", env.Status)
		assert.NotContains(t, rec.Body.String(), "password")
		assert.NotContains(t, rec.Body.String(), "verification")
		s.authSvc.AssertExpectations(t)
	})

	t.Run("role-conditioned validation failure", func(t *testing.T) {
		s := newTestServer()

		rec, env := s.do(http.MethodPost, "/api/auth/register", `{
			"email": "doc@x.com",
			"password": "Passw0rd!",
			"role": "DOCTOR",
			"firstName": "Jane",
			"lastName": "Smith",
			"dateOfBirth": "1980-06-15",
			"gender": "FEMALE",
			"contactNumber": "+1234567890",
			"address": "123 Main St"
		}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "error", env.Status)
		s.authSvc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := newTestServer()
		s.authSvc.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrEmailExists)

		rec, env := s.do(http.MethodPost, "/api/auth/register", `{
			"email": "a@x.com",
			"password": "Passw0rd!",
			"role": "ADMIN"
		}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "error", env.Status)
		assert.Equal(t, apperrors.ErrEmailExists.Error(), env.Message)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("success returns access token", func(t *testing.T) {
		s := newTestServer()
		s.authSvc.On("Login", mock.Anything, "a@x.com", "Passw0rd!").Return("signed-token", nil)

		rec, env := s.do(http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"Passw0rd!"}`, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", env.Status)
		data, ok := env.Data.(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, "signed-token", data["access_token"])
	})

	t.Run("invalid credentials and unverified email map to 401 with distinct messages", func(t *testing.T) {
		for _, svcErr := range []error{apperrors.ErrInvalidCredentials, apperrors.ErrEmailNotVerified} {
			s := newTestServer()
			s.authSvc.On("Login", mock.Anything, "a@x.com", "nope").Return("", svcErr)

			rec, env := s.do(http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"nope"}`, "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "error", env.Status)
			assert.Equal(t, svcErr.Error(), env.Message)
		}
	})
}

func TestVerifyAndResetEndpoints(t *testing.T) {
	t.Run("verify consumes the token", func(t *testing.T) {
		s := newTestServer()
		s.authSvc.On("VerifyEmail", mock.Anything, "tok-123").Return(nil)

		rec, env := s.do(http.MethodGet, "/api/auth/verify/tok-123", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", env.Status)
	})

	t.Run("second verify fails", func(t *testing.T) {
		s := newTestServer()
		s.authSvc.On("VerifyEmail", mock.Anything, "tok-123").Return(apperrors.ErrInvalidVerificationToken)

		rec, env := s.do(http.MethodGet, "/api/auth/verify/tok-123", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("reset with bad token", func(t *testing.T) {
		s := newTestServer()
		s.authSvc.On("ResetPassword", mock.Anything, "bad", "NewPassw0rd!").Return(apperrors.ErrInvalidResetToken)

		rec, _ := s.do(http.MethodPatch, "/api/auth/reset-password/bad", `{"newPassword":"NewPassw0rd!"}`, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("forgot password for unknown email", func(t *testing.T) {
		s := newTestServer()
		s.authSvc.On("ForgotPassword", mock.Anything, "nobody@x.com").Return(apperrors.ErrUserNotFound)

		rec, _ := s.do(http.MethodPost, "/api/auth/forgot-password", `{"email":"nobody@x.com"}`, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGuardedRoutes(t *testing.T) {
	t.Run("profile requires a token", func(t *testing.T) {
		s := newTestServer()

		rec, env := s.do(http.MethodGet, "/api/auth/profile", "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("profile returns the role shape", func(t *testing.T) {
		s := newTestServer()
		token, _ := s.jwtService.GenerateAccessToken(1, "a@x.com", model.RolePatient)
		s.profileSvc.On("GetProfile", mock.Anything, uint(1)).Return(service.PatientProfile{
			ID:        1,
			Email:     "a@x.com",
			Role:      model.RolePatient,
			FirstName: "John",
			LastName:  "Doe",
		}, nil)

		rec, env := s.do(http.MethodGet, "/api/auth/profile", "", token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", env.Status)
		assert.Contains(t, rec.Body.String(), `"firstName":"John"`)
		assert.NotContains(t, rec.Body.String(), "specialty")
	})

	t.Run("role allow-set separates 401 from 403", func(t *testing.T) {
		s := newTestServer()
		patientToken, _ := s.jwtService.GenerateAccessToken(1, "a@x.com", model.RolePatient)
		adminToken, _ := s.jwtService.GenerateAccessToken(2, "admin@x.com", model.RoleAdmin)
		s.userSvc.On("ListUsers", mock.Anything).Return([]model.User{}, nil)

		rec, _ := s.do(http.MethodGet, "/api/users/admin-data", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		rec, _ = s.do(http.MethodGet, "/api/users/admin-data", "", patientToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec, _ = s.do(http.MethodGet, "/api/users/admin-data", "", adminToken)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = s.do(http.MethodGet, "/api/users/patient-data", "", patientToken)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec, _ = s.do(http.MethodGet, "/api/users/patient-data", "", adminToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
