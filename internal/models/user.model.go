package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	BaseUUIDModel
	FirstName      string  `gorm:"type:varchar(64)"                json:"firstName"`
	LastName       string  `gorm:"type:varchar(64)"                json:"lastName"`
	DisplayName    string  `gorm:"type:varchar(128)"               json:"displayName"`
	Email          *string `gorm:"type:varchar(255);uniqueIndex"   json:"email"`
	Login          string  `gorm:"type:varchar(64);uniqueIndex;not null" json:"login"`
	Password       string  `gorm:"-"                               json:"-"`
	HashedPassword string  `gorm:"type:varchar(255);not null"      json:"-"`

	DateOfBirth        *time.Time `gorm:"type:date"        json:"dateOfBirth"`
	Gender             *string    `gorm:"type:varchar(20)" json:"gender"`
	HeightCm           *float64   `gorm:"type:real"        json:"heightCm"`
	WeightKg           *float64   `gorm:"type:real"        json:"weightKg"`
	LanguagePreference string     `gorm:"type:varchar(5);default:en" json:"languagePreference"`

	LastLoginAt *time.Time `json:"lastLoginAt"`
	IsActive    bool       `gorm:"default:true"  json:"isActive"`
	IsAdmin     bool       `gorm:"default:false" json:"isAdmin"`
}

// BeforeSave hashes a pending plaintext password. Password is never persisted;
// only the bcrypt hash reaches the database.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if err := u.BaseUUIDModel.BeforeSave(tx); err != nil {
		return err
	}

	if u.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u.HashedPassword = string(hash)
		u.Password = ""
	}

	return nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Login     string  `json:"login"`
	Email     *string `json:"email"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
}

type UpdateProfileRequest struct {
	FirstName          *string    `json:"firstName"`
	LastName           *string    `json:"lastName"`
	DisplayName        *string    `json:"displayName"`
	Email              *string    `json:"email"`
	DateOfBirth        *time.Time `json:"dateOfBirth"`
	Gender             *string    `json:"gender"`
	HeightCm           *float64   `json:"heightCm"`
	WeightKg           *float64   `json:"weightKg"`
	LanguagePreference *string    `json:"languagePreference"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// SessionData is what the session cache stores per issued session token.
type SessionData struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
