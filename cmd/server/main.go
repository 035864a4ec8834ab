package main

import (
	"log"
	"net/http"
	"os"

	"microlend/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"microlend/internal/auth"
	"microlend/internal/cache"
	"microlend/internal/config"
	"microlend/internal/db"
	"microlend/internal/handler"
	"microlend/internal/model"
	"microlend/internal/repository"
	"microlend/internal/router"
	"microlend/internal/service"
)

// @title Micro-Lending API
// @version 1.0
// @description Back-office API for tracking borrowers, with JWT authentication and profile picture uploads.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	// Swag bakes the host into the generated spec; override it when the
	// service is exposed under a different name.
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Borrower{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	borrowerRepo := repository.NewBorrowerRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	borrowerService := service.NewBorrowerService(borrowerRepo, cacheClient)
	profileService := service.NewProfileService(userRepo, cfg.UploadDir)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	borrowerHandler := handler.NewBorrowerHandler(borrowerService)
	profileHandler := handler.NewProfileHandler(profileService)
	seedHandler := handler.NewSeedHandler(borrowerService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		borrowerHandler,
		profileHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
