package database

import (
	"errors"
	"log"
	"strings"

	"cafe-billing/config"
	"cafe-billing/internal/models"
	"cafe-billing/internal/utils"

	"gorm.io/gorm"
)

// SeedAdmin creates the configured admin account when it does not exist yet.
func SeedAdmin(db *gorm.DB, defaults config.DefaultsConfig) {
	email := strings.ToLower(strings.TrimSpace(defaults.AdminEmail))
	if email == "" || defaults.AdminPassword == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var admin models.User
	err := db.Where("email = ?", email).First(&admin).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to look up admin user: %v", err)
		return
	}

	hashedPassword, err := utils.HashPassword(defaults.AdminPassword)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}
	admin = models.User{
		Email:        email,
		Name:         defaults.AdminName,
		PasswordHash: hashedPassword,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Println("Admin user seeded successfully.")
}
