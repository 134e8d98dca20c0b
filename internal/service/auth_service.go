package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"healthhub/internal/auth"
	apperrors "healthhub/internal/errors"
	"healthhub/internal/mailer"
	"healthhub/internal/model"
	"healthhub/internal/repository"
)

// RegisterInput carries the already-validated registration fields. The
// profile fields are ignored for ADMIN registrations.
type RegisterInput struct {
	Email             string
	Password          string
	Role              model.Role
	FirstName         string
	LastName          string
	DateOfBirth       time.Time
	Gender            model.Gender
	ContactNumber     string
	Address           string
	Specialty         string
	YearsOfExperience int
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (accessToken string, err error)
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	mailer     mailer.Mailer
	log        zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, m mailer.Mailer, log zerolog.Logger) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		mailer:     m,
		log:        log,
	}
}

// Register creates the user and its role-specific profile atomically and
// dispatches the verification email once the transaction has committed.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if !input.Role.Valid() {
		return nil, apperrors.ErrUnknownRole
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verificationToken := uuid.New().String()
	user := &model.User{
		Email:             input.Email,
		PasswordHash:      hashed,
		Role:              input.Role,
		VerificationToken: &verificationToken,
	}

	var patient *model.Patient
	var doctor *model.Doctor
	switch input.Role {
	case model.RolePatient:
		patient = &model.Patient{
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			DateOfBirth:   input.DateOfBirth,
			Gender:        input.Gender,
			ContactNumber: input.ContactNumber,
			Address:       input.Address,
		}
	case model.RoleDoctor:
		doctor = &model.Doctor{
			FirstName:         input.FirstName,
			LastName:          input.LastName,
			DateOfBirth:       input.DateOfBirth,
			Gender:            input.Gender,
			ContactNumber:     input.ContactNumber,
			Address:           input.Address,
			Specialty:         input.Specialty,
			YearsOfExperience: input.YearsOfExperience,
		}
	}

	if err := s.users.CreateWithProfile(ctx, user, patient, doctor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailExists
		}
		if errors.Is(err, apperrors.ErrUnknownRole) {
			return nil, apperrors.ErrUnknownRole
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Email dispatch is best-effort and must not undo the committed
	// transaction; a failure is logged and the registration still succeeds.
	if err := s.mailer.SendVerificationEmail(user.Email, verificationToken); err != nil {
		s.log.Error().Err(err).Uint("user_id", user.ID).Msg("verification email dispatch failed")
	}

	return user, nil
}

// Login validates credentials and issues a session token. Unknown email
// and wrong password produce the same error; an unverified email is
// reported distinctly.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// burn a hash comparison so a missing account takes as long as a
		// password mismatch
		auth.BurnPasswordCheck(password)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", apperrors.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return "", apperrors.ErrEmailNotVerified
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// VerifyEmail consumes a verification token. The token is cleared on
// success, so a second use always fails.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.FindByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidVerificationToken
		}
		return fmt.Errorf("find verification token: %w", err)
	}

	if err := s.users.MarkEmailVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

// ForgotPassword issues a short-lived reset token and emails it. Nothing
// is written to the store at request time.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	resetToken, err := s.jwtService.GenerateResetToken(user.ID)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, resetToken); err != nil {
		s.log.Error().Err(err).Uint("user_id", user.ID).Msg("reset email dispatch failed")
	}
	return nil
}

// ResetPassword rotates the password of the user a valid reset token is
// bound to. Token possession is the sole authorization.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := s.jwtService.ValidateResetToken(token)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	rows, err := s.users.UpdatePassword(ctx, claims.UserID, hashed)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if rows == 0 {
		// valid signature but the user is gone
		return apperrors.ErrInvalidResetToken
	}
	return nil
}
