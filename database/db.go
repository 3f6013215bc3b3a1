package database

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"innervoice/internal/config"
	"innervoice/internal/http-api/models"
	"innervoice/internal/http-api/service"
	"innervoice/internal/middleware/auth"
)

// Connect opens the postgres connection and migrates the schema.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Confession{},
		&models.Comment{},
		&models.Like{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

type seedCategory struct {
	name        string
	description string
	color       string
}

var defaultCategories = []seedCategory{
	{"Relationships", "Love, friendship and everything in between", "#ec4899"},
	{"Work", "Office life, careers and workplace stories", "#3b82f6"},
	{"Mental Health", "Struggles, coping and recovery", "#10b981"},
	{"Family", "Parents, siblings and family matters", "#f59e0b"},
	{"Secrets", "Things never said out loud", "#8b5cf6"},
	{"Dreams", "Hopes, ambitions and what keeps you going", "#6366f1"},
	{"Regrets", "Choices you wish you could take back", "#ef4444"},
	{"Gratitude", "Moments and people you are thankful for", "#14b8a6"},
}

// Seed ensures the admin account and the default categories exist.
// Safe to run on every startup.
func Seed(db *gorm.DB, cfg *config.Config, logger zerolog.Logger) error {
	var adminCount int64
	if err := db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if adminCount == 0 {
		hash, err := auth.HashPassword(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin := &models.User{
			Name:       "Admin",
			Email:      cfg.AdminEmail,
			Password:   hash,
			IsVerified: true,
			IsAdmin:    true,
		}
		if err := db.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin account: %w", err)
		}
		logger.Info().Str("email", cfg.AdminEmail).Msg("seeded admin account")
	}

	for _, seed := range defaultCategories {
		var count int64
		if err := db.Model(&models.Category{}).Where("name = ?", seed.name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check category %q: %w", seed.name, err)
		}
		if count > 0 {
			continue
		}
		category := &models.Category{
			Name:        seed.name,
			Slug:        service.Slugify(seed.name),
			Description: seed.description,
			Color:       seed.color,
		}
		if err := db.Create(category).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", seed.name, err)
		}
	}

	return nil
}
