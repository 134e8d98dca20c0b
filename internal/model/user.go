package model

import "time"

// Role is the closed set of user roles. A user's role is fixed at
// creation and decides which profile record must exist alongside it.
type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Gender values accepted on profile records.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// User represents an authenticated user in the system.
type User struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Email             string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role              Role      `json:"role" gorm:"size:20;not null"`
	IsEmailVerified   bool      `json:"is_email_verified" gorm:"not null;default:false"`
	VerificationToken *string   `json:"-" gorm:"uniqueIndex;size:64"` // cleared on first successful verification
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Role-specific profile extensions. At most one is set, matching Role.
	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Doctor  *Doctor  `json:"doctor,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
