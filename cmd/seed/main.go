package main

import (
	"context"
	"errors"
	"log"
	"os"

	"gorm.io/gorm"

	"healthhub/internal/auth"
	"healthhub/internal/config"
	"healthhub/internal/db"
	"healthhub/internal/model"
	"healthhub/internal/repository"
)

// Seeds the bootstrap ADMIN account so the user-management endpoints are
// reachable on a fresh database. Idempotent: an existing admin is left alone.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Patient{}, &model.Doctor{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	email := envOr("ADMIN_EMAIL", "admin@healthhub.local")
	password := envOr("ADMIN_PASSWORD", "ChangeMe@123")

	userRepo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	if _, err := userRepo.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin %s already exists, nothing to do", email)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check admin existence: %v", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.User{
		Email:           email,
		PasswordHash:    hash,
		Role:            model.RoleAdmin,
		IsEmailVerified: true, // seeded admin skips the email round-trip
	}
	if err := userRepo.CreateWithProfile(ctx, admin, nil, nil); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Seed completed successfully, admin id=%d email=%s", admin.ID, admin.Email)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
