package main

import (
	"log"
	"net/http"

	_ "healthhub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"healthhub/internal/auth"
	"healthhub/internal/cache"
	"healthhub/internal/config"
	"healthhub/internal/db"
	"healthhub/internal/handler"
	"healthhub/internal/logger"
	"healthhub/internal/mailer"
	"healthhub/internal/model"
	"healthhub/internal/repository"
	"healthhub/internal/router"
	"healthhub/internal/service"
)

// @title HealthHub API
// @version 1.0
// @description Role-based authentication and profile management for healthcare records.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	appLog := logger.New(cfg.LogLevel)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Patient{},
		&model.Doctor{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	mailGateway := mailer.NewLogMailer(cfg.AppURL, appLog)

	authService := service.NewAuthService(userRepo, jwtService, mailGateway, appLog)
	profileService := service.NewProfileService(userRepo, cacheClient)
	userService := service.NewUserService(userRepo, cacheClient)

	authHandler := handler.NewAuthHandler(authService, profileService)
	userHandler := handler.NewUserHandler(userService)

	router.Register(e, cfg, appLog, jwtService, authHandler, userHandler)

	appLog.Info().Str("port", cfg.ServerPort).Msg("starting server")

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
