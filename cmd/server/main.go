package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"drivehub/internal/auth"
	"drivehub/internal/cache"
	"drivehub/internal/config"
	"drivehub/internal/db"
	"drivehub/internal/handler"
	"drivehub/internal/model"
	"drivehub/internal/repository"
	"drivehub/internal/router"
	"drivehub/internal/service"
	"drivehub/internal/storage"
)

// @title DriveHub Car Rental API
// @version 1.0
// @description Car rental booking platform with JWT authentication, admin-managed inventory, and rental lifecycle approval.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Review{},
			&model.Payment{},
			&model.Rental{},
			&model.Car{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Car{},
		&model.Rental{},
		&model.Payment{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	imageStore, err := storage.NewMinioStore(cfg)
	if err != nil {
		log.Fatalf("image store init: %v", err)
	}
	ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := imageStore.EnsureBucket(ensureCtx); err != nil {
		log.Printf("Warning: ensure bucket: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	carRepo := repository.NewCarRepository(gormDB)
	rentalRepo := repository.NewRentalRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, jwtService, cacheClient)
	carService := service.NewCarService(carRepo, imageStore, cacheClient)
	rentalService := service.NewRentalService(rentalRepo, carRepo)
	paymentService := service.NewPaymentService(paymentRepo, rentalRepo)
	reviewService := service.NewReviewService(reviewRepo, carRepo)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	carHandler := handler.NewCarHandler(carService)
	rentalHandler := handler.NewRentalHandler(rentalService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// Register routes
	router.Register(
		e,
		cfg,
		userRepo,
		userHandler,
		carHandler,
		rentalHandler,
		paymentHandler,
		reviewHandler,
	)

	// A stalled database or object store must not hold a connection forever.
	e.Server.ReadTimeout = 30 * time.Second
	e.Server.WriteTimeout = 60 * time.Second
	e.Server.IdleTimeout = 120 * time.Second

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
