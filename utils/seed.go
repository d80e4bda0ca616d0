package utils

import (
	"errors"
	"os"

	"github.com/L-1ngg/movie-system/logger"
	"github.com/L-1ngg/movie-system/models"
	"gorm.io/gorm"
)

// EnsureAdminUser creates the bootstrap admin account from
// ADMIN_USERNAME / ADMIN_EMAIL / ADMIN_PASSWORD when no user with that
// email exists yet. Registration always produces role "user", so
// without this there would be no way to reach the admin routes.
func EnsureAdminUser(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info("created bootstrap admin user %s", email)
	return nil
}
