package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sangkips/storepos-api/internal/config"
	"github.com/sangkips/storepos-api/internal/domain/entity"
	"github.com/sangkips/storepos-api/internal/domain/enum"
	"github.com/sangkips/storepos-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&entity.User{},

		&entity.Category{},
		&entity.Product{},
		&entity.PaymentMethod{},
		&entity.DiscountRule{},
		&entity.StoreProfile{},

		&entity.CashRegisterSession{},
		&entity.Transaction{},
		&entity.TransactionItem{},

		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// SeedDefaultData creates the rows a fresh install needs to take a sale: the
// cash payment method, a store profile and, when configured, an admin user.
// Existing rows are left untouched.
func SeedDefaultData(db *gorm.DB, admin config.AdminConfig, log *zap.Logger) error {
	log.Info("seeding default data")

	var cashCount int64
	if err := db.Model(&entity.PaymentMethod{}).Where("is_cash = ?", true).Count(&cashCount).Error; err != nil {
		return fmt.Errorf("failed to check cash payment method: %w", err)
	}
	if cashCount == 0 {
		cash := entity.PaymentMethod{Name: "Cash", IsCash: true, IsActive: true}
		if err := db.Create(&cash).Error; err != nil {
			return fmt.Errorf("failed to seed cash payment method: %w", err)
		}
		log.Info("seeded payment method", zap.String("name", cash.Name))
	}

	var profile entity.StoreProfile
	err := db.First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = entity.StoreProfile{
			Name:          "My Store",
			ReceiptFooter: "Thank you for your purchase!",
			Settings:      datatypes.JSONMap{"show_cashier": true},
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to seed store profile: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check store profile: %w", err)
	}

	if admin.Email == "" || admin.Password == "" {
		log.Info("default data seeding completed")
		return nil
	}

	email := strings.ToLower(admin.Email)
	var existing entity.User
	err = db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		log.Info("admin user already exists", zap.String("email", email))
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, err := utils.HashPassword(admin.Password)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		name := admin.Name
		if name == "" {
			name = "Store Admin"
		}
		user := entity.User{
			Name:     name,
			Email:    email,
			Password: hashed,
			Role:     enum.RoleAdmin,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		log.Info("admin user created", zap.String("email", email))
	default:
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	log.Info("default data seeding completed")
	return nil
}
