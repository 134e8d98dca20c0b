package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"healthhub/internal/cache"
	apperrors "healthhub/internal/errors"
	"healthhub/internal/model"
	"healthhub/internal/repository"
)

const profileCacheTTL = 5 * time.Minute

// Profile is the role-shaped projection of a user. Exactly one of the
// three concrete types below implements it per role, so handlers can
// type-switch exhaustively instead of probing optional fields.
type Profile interface {
	ProfileRole() model.Role
}

// PatientProfile is the projection returned for PATIENT users.
type PatientProfile struct {
	ID            uint         `json:"id"`
	Email         string       `json:"email"`
	Role          model.Role   `json:"role"`
	FirstName     string       `json:"firstName"`
	LastName      string       `json:"lastName"`
	DateOfBirth   time.Time    `json:"dateOfBirth"`
	Gender        model.Gender `json:"gender"`
	ContactNumber string       `json:"contactNumber,omitempty"`
	Address       string       `json:"address,omitempty"`
}

// ProfileRole implements Profile.
func (PatientProfile) ProfileRole() model.Role { return model.RolePatient }

// DoctorProfile is the projection returned for DOCTOR users.
type DoctorProfile struct {
	ID                uint         `json:"id"`
	Email             string       `json:"email"`
	Role              model.Role   `json:"role"`
	FirstName         string       `json:"firstName"`
	LastName          string       `json:"lastName"`
	DateOfBirth       time.Time    `json:"dateOfBirth"`
	Gender            model.Gender `json:"gender"`
	ContactNumber     string       `json:"contactNumber,omitempty"`
	Address           string       `json:"address,omitempty"`
	Specialty         string       `json:"specialty"`
	YearsOfExperience int          `json:"yearsOfExperience"`
}

// ProfileRole implements Profile.
func (DoctorProfile) ProfileRole() model.Role { return model.RoleDoctor }

// AdminProfile is the bare projection returned for ADMIN users.
type AdminProfile struct {
	ID    uint       `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// ProfileRole implements Profile.
func (AdminProfile) ProfileRole() model.Role { return model.RoleAdmin }

// ProfileService resolves a user id to its role-shaped profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID uint) (Profile, error)
}

type profileService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewProfileService builds a ProfileService with repository and cache.
func NewProfileService(users repository.UserRepository, cache *cache.Client) ProfileService {
	return &profileService{users: users, cache: cache}
}

// cachedProfile carries a role discriminator so the cached payload can be
// decoded back into the right concrete projection.
type cachedProfile struct {
	Role    model.Role      `json:"role"`
	Payload json.RawMessage `json:"payload"`
}

func (s *profileService) cacheKey(userID uint) string {
	return fmt.Sprintf("profile:%d", userID)
}

func (s *profileService) GetProfile(ctx context.Context, userID uint) (Profile, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		if p, err := decodeCachedProfile(data); err == nil {
			return p, nil
		}
	}

	user, err := s.users.FindByIDWithProfiles(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	profile, err := buildProfile(user)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(profile); err == nil {
		if wrapped, err := json.Marshal(cachedProfile{Role: profile.ProfileRole(), Payload: payload}); err == nil {
			_ = s.cache.Set(ctx, s.cacheKey(userID), wrapped, profileCacheTTL)
		}
	}
	return profile, nil
}

func buildProfile(user *model.User) (Profile, error) {
	switch user.Role {
	case model.RolePatient:
		if user.Patient == nil {
			return nil, apperrors.ErrUserNotFound
		}
		return PatientProfile{
			ID:            user.ID,
			Email:         user.Email,
			Role:          user.Role,
			FirstName:     user.Patient.FirstName,
			LastName:      user.Patient.LastName,
			DateOfBirth:   user.Patient.DateOfBirth,
			Gender:        user.Patient.Gender,
			ContactNumber: user.Patient.ContactNumber,
			Address:       user.Patient.Address,
		}, nil
	case model.RoleDoctor:
		if user.Doctor == nil {
			return nil, apperrors.ErrUserNotFound
		}
		return DoctorProfile{
			ID:                user.ID,
			Email:             user.Email,
			Role:              user.Role,
			FirstName:         user.Doctor.FirstName,
			LastName:          user.Doctor.LastName,
			DateOfBirth:       user.Doctor.DateOfBirth,
			Gender:            user.Doctor.Gender,
			ContactNumber:     user.Doctor.ContactNumber,
			Address:           user.Doctor.Address,
			Specialty:         user.Doctor.Specialty,
			YearsOfExperience: user.Doctor.YearsOfExperience,
		}, nil
	case model.RoleAdmin:
		return AdminProfile{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		}, nil
	default:
		return nil, apperrors.ErrUserNotFound
	}
}

func decodeCachedProfile(data []byte) (Profile, error) {
	var wrapped cachedProfile
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	switch wrapped.Role {
	case model.RolePatient:
		var p PatientProfile
		if err := json.Unmarshal(wrapped.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	case model.RoleDoctor:
		var p DoctorProfile
		if err := json.Unmarshal(wrapped.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	case model.RoleAdmin:
		var p AdminProfile
		if err := json.Unmarshal(wrapped.Payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown cached role %q", wrapped.Role)
	}
}
