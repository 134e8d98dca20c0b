package model

import "time"

// Doctor is the profile extension created together with a DOCTOR user.
type Doctor struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName         string    `json:"first_name" gorm:"size:255;not null"`
	LastName          string    `json:"last_name" gorm:"size:255;not null"`
	DateOfBirth       time.Time `json:"date_of_birth" gorm:"not null"`
	Gender            Gender    `json:"gender" gorm:"size:10;not null"`
	ContactNumber     string    `json:"contact_number" gorm:"size:20"`
	Address           string    `json:"address" gorm:"size:255"`
	Specialty         string    `json:"specialty" gorm:"size:255;not null"`
	YearsOfExperience int       `json:"years_of_experience" gorm:"not null"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
