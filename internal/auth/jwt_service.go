package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"healthhub/internal/model"
)

const (
	// AccessTokenExpiry is the duration for which session tokens are valid.
	AccessTokenExpiry = 24 * time.Hour
	// ResetTokenExpiry is the duration for which password-reset tokens are valid.
	ResetTokenExpiry = time.Hour

	purposePasswordReset = "password_reset"
)

// Claims represents JWT claims. Purpose is empty on session tokens and
// set on single-purpose tokens such as password resets.
type Claims struct {
	UserID  uint       `json:"user_id"`
	Email   string     `json:"email,omitempty"`
	Role    model.Role `json:"role,omitempty"`
	Purpose string     `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed, time-bound tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateAccessToken signs a session token carrying identity and role.
func (s *JWTService) GenerateAccessToken(userID uint, email string, role model.Role) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// GenerateResetToken signs a short-lived token bound to a user id that is
// only accepted by ValidateResetToken.
func (s *JWTService) GenerateResetToken(userID uint) (string, error) {
	claims := &Claims{
		UserID:  userID,
		Purpose: purposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ResetTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateAccessToken verifies a session token and returns its claims.
// Single-purpose tokens are rejected even when their signature is valid.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != "" {
		return nil, errors.New("not a session token")
	}
	return claims, nil
}

// ValidateResetToken verifies a password-reset token and returns its claims.
func (s *JWTService) ValidateResetToken(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purposePasswordReset {
		return nil, errors.New("not a reset token")
	}
	return claims, nil
}

func (s *JWTService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
