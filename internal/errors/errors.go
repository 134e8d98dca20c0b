package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for a wrong password or an unknown
	// email alike, so callers cannot tell which part was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailNotVerified is returned when credentials are correct but the
	// email has not been verified yet. Intentionally distinct from
	// ErrInvalidCredentials.
	ErrEmailNotVerified = errors.New("please verify your email before logging in")
	// ErrEmailExists is returned when registering an already-used email.
	ErrEmailExists = errors.New("email already registered")
	// ErrUnknownRole is returned when a registration carries a role outside
	// the closed set.
	ErrUnknownRole = errors.New("invalid user role")
	// ErrInvalidVerificationToken is returned when a verification token does
	// not match any user, including a second use of an already-consumed one.
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	// ErrInvalidResetToken is returned for a reset token that fails
	// signature, expiry or purpose checks, or targets no existing user.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrUserNotFound is returned when a user or profile lookup finds nothing.
	ErrUserNotFound = errors.New("user not found")
)

// HTTPError represents an HTTP error with status code. Err keeps the
// underlying cause for operator logs; Message is what callers see.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Err        error
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors are
// masked behind a generic message; the cause stays attached for logging.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		httpErr = NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailNotVerified):
		httpErr = NewHTTPError(http.StatusUnauthorized, err.Error(), "EMAIL_NOT_VERIFIED")
	case errors.Is(err, ErrEmailExists):
		httpErr = NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_EXISTS")
	case errors.Is(err, ErrUnknownRole):
		httpErr = NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_ROLE")
	case errors.Is(err, ErrInvalidVerificationToken):
		httpErr = NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_VERIFICATION_TOKEN")
	case errors.Is(err, ErrInvalidResetToken):
		httpErr = NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_RESET_TOKEN")
	case errors.Is(err, ErrUserNotFound):
		httpErr = NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	default:
		httpErr = NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
	httpErr.Err = err
	return httpErr
}
