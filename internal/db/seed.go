package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/staffing-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/staffing-scheduler/internal/models"
)

// SeedAdmin creates the bootstrap admin account when email and password are
// set and no user owns that email yet. It reports whether a row was created.
func SeedAdmin(db *gorm.DB, name, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         string(access.RoleAdmin),
	}
	if err := db.Create(&admin).Error; err != nil {
		return false, err
	}
	return true, nil
}
