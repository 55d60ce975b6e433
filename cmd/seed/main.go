package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"drivehub/internal/config"
	"drivehub/internal/db"
	"drivehub/internal/model"
	"drivehub/internal/repository"
)

// SeedCarData represents a car entry in the seed document.
type SeedCarData struct {
	Brand           string `json:"brand"`
	Model           string `json:"model"`
	PricePerDay     string `json:"price_per_day"`
	FuelType        string `json:"fuel_type"`
	Status          string `json:"status"`
	SeatingCapacity int    `json:"seating_capacity"`
	ImageURL        string `json:"image_url"`
}

var defaultCars = []SeedCarData{
	{Brand: "Toyota", Model: "Corolla", PricePerDay: "35.00", FuelType: "GASOIL", Status: "AVAILABLE", SeatingCapacity: 5, ImageURL: "https://placehold.co/600x400?text=Corolla"},
	{Brand: "Hyundai", Model: "Tucson", PricePerDay: "55.00", FuelType: "DIESEL", Status: "AVAILABLE", SeatingCapacity: 5, ImageURL: "https://placehold.co/600x400?text=Tucson"},
	{Brand: "Renault", Model: "Clio", PricePerDay: "28.00", FuelType: "GASOIL", Status: "AVAILABLE", SeatingCapacity: 5, ImageURL: "https://placehold.co/600x400?text=Clio"},
	{Brand: "Mercedes", Model: "Sprinter", PricePerDay: "90.00", FuelType: "DIESEL", Status: "NOT_AVAILABLE", SeatingCapacity: 9, ImageURL: "https://placehold.co/600x400?text=Sprinter"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	userRepo := repository.NewUserRepository(gormDB)
	carRepo := repository.NewCarRepository(gormDB)

	seedAdmin(ctx, userRepo)
	seedCars(ctx, gormDB, carRepo)

	log.Println("Seed complete")
}

// seedAdmin creates or repairs the ADMIN account from environment credentials.
func seedAdmin(ctx context.Context, users repository.UserRepository) {
	email := getEnv("ADMIN_EMAIL", "admin@drivehub.local")
	password := getEnv("ADMIN_PASSWORD", "admin123")
	name := getEnv("ADMIN_NAME", "Administrator")

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}

	existing, err := users.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		log.Fatalf("lookup admin: %v", err)
	}

	if existing != nil {
		existing.Role = model.RoleAdmin
		existing.PasswordHash = string(hashed)
		if err := users.Update(ctx, existing); err != nil {
			log.Fatalf("update admin: %v", err)
		}
		log.Printf("Admin account %s updated", email)
		return
	}

	admin := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        "000-000-0000",
		Address:      "head office",
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("Admin account %s created", email)
}

// seedCars upserts the demo inventory, optionally fetched from SEED_CARS_URL.
func seedCars(ctx context.Context, gormDB *gorm.DB, cars repository.CarRepository) {
	entries := defaultCars
	if url := os.Getenv("SEED_CARS_URL"); url != "" {
		fetched, err := fetchCars(ctx, url)
		if err != nil {
			log.Printf("Warning: fetch seed cars: %v (falling back to defaults)", err)
		} else {
			entries = fetched
		}
	}

	count := 0
	for _, entry := range entries {
		price, err := decimal.NewFromString(entry.PricePerDay)
		if err != nil || !price.IsPositive() {
			log.Printf("Warning: skipping %s %s: bad price %q", entry.Brand, entry.Model, entry.PricePerDay)
			continue
		}

		var existing model.Car
		err = gormDB.WithContext(ctx).
			Where("brand = ? AND model = ?", entry.Brand, entry.Model).
			First(&existing).Error
		if err == nil {
			continue // already seeded
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("lookup car: %v", err)
		}

		car := &model.Car{
			Brand:           entry.Brand,
			Model:           entry.Model,
			PricePerDay:     price,
			FuelType:        model.FuelType(entry.FuelType),
			Status:          model.CarStatus(entry.Status),
			SeatingCapacity: entry.SeatingCapacity,
			ImageURL:        entry.ImageURL,
		}
		if err := cars.Create(ctx, car); err != nil {
			log.Fatalf("create car: %v", err)
		}
		count++
	}
	log.Printf("Seeded %d cars", count)
}

func fetchCars(ctx context.Context, url string) ([]SeedCarData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var entries []SeedCarData
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
