package database

import (
	"log"

	"provest/config"
	"provest/internal/domain"
	"provest/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the MySQL connection pool. The handle is constructed once
// here and injected into repositories from main; nothing in the
// codebase caches it globally.
func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// Close releases the underlying connection pool on shutdown.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.InvestmentPlan{},
		&models.Investment{},
		&models.Transaction{},
	)
}

// SeedAdmin creates the bootstrap admin account if none exists.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[seed] admin password hash failed: %v", err)
		return
	}
	admin := &models.User{
		Name:         "Administrator",
		Email:        "admin@provest.local",
		PasswordHash: string(hash),
		ReferralCode: "ADMIN000",
		IsAdmin:      true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("[seed] admin create failed: %v", err)
		return
	}
	db.Create(&models.Wallet{UserID: admin.ID, Currency: domain.DefaultCurrency})
	log.Println("[seed] admin account created (admin@provest.local)")
}

// SeedPlans inserts starter plans on an empty database so the catalog
// is browsable out of the box.
func SeedPlans(db *gorm.DB) {
	var count int64
	db.Model(&models.InvestmentPlan{}).Count(&count)
	if count > 0 {
		return
	}
	plans := []models.InvestmentPlan{
		{
			Name:        "Starter",
			Description: "Short-term entry plan with conservative exposure.",
			MinAmount:   100,
			MaxAmount:   4999,
			ReturnRate:  "5-8% annually",
			Duration:    90,
			RiskLevel:   domain.RiskLevelLow,
			Features:    []string{"90 day term", "Low risk portfolio", "Email support"},
			IsActive:    true,
		},
		{
			Name:        "Growth",
			Description: "Balanced plan targeting medium-term growth.",
			MinAmount:   5000,
			MaxAmount:   24999,
			ReturnRate:  "8-12% annually",
			Duration:    180,
			RiskLevel:   domain.RiskLevelMedium,
			Features:    []string{"180 day term", "Diversified portfolio", "Priority support"},
			IsActive:    true,
		},
		{
			Name:        "Premium",
			Description: "Long-term plan for aggressive growth targets.",
			MinAmount:   25000,
			MaxAmount:   250000,
			ReturnRate:  "12-18% annually",
			Duration:    365,
			RiskLevel:   domain.RiskLevelHigh,
			Features:    []string{"365 day term", "High-yield portfolio", "Dedicated manager"},
			IsActive:    true,
		},
	}
	if err := db.Create(&plans).Error; err != nil {
		log.Printf("[seed] plans create failed: %v", err)
		return
	}
	log.Printf("[seed] %d starter plans created", len(plans))
}
