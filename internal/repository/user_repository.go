package repository

import (
	"context"

	"gorm.io/gorm"

	apperrors "healthhub/internal/errors"
	"healthhub/internal/model"
)

// UserRepository defines persistence operations for users and their
// role-specific profile extensions.
type UserRepository interface {
	// CreateWithProfile inserts the user and, depending on its role, the
	// matching profile row inside a single transaction. Either both rows
	// exist afterwards or neither does.
	CreateWithProfile(ctx context.Context, user *model.User, patient *model.Patient, doctor *model.Doctor) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	// FindByIDWithProfiles preloads the Patient/Doctor extension.
	FindByIDWithProfiles(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*model.User, error)
	// MarkEmailVerified flips the verification flag and clears the token in
	// one update, making the token single-use.
	MarkEmailVerified(ctx context.Context, id uint) error
	// UpdatePassword replaces the password hash and returns the number of
	// rows affected; zero means the user no longer exists.
	UpdatePassword(ctx context.Context, id uint, passwordHash string) (int64, error)
	List(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateWithProfile(ctx context.Context, user *model.User, patient *model.Patient, doctor *model.Doctor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		switch user.Role {
		case model.RolePatient:
			patient.UserID = user.ID
			return tx.Create(patient).Error
		case model.RoleDoctor:
			doctor.UserID = user.ID
			return tx.Create(doctor).Error
		case model.RoleAdmin:
			// admins carry no profile extension
			return nil
		default:
			// aborts the transaction, rolling back the user insert
			return apperrors.ErrUnknownRole
		}
	})
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIDWithProfiles(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("verification_token = ?", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) MarkEmailVerified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_email_verified":  true,
			"verification_token": nil,
		}).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash)
	return res.RowsAffected, res.Error
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
