package models

import (
	"errors"
	"time"

	goval "github.com/go-passwd/validator"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account of the application
type User struct {
	Model
	Email          string      `json:"email" gorm:"unique;not null"`
	Password       string      `json:"password,omitempty" gorm:"-"`
	HashedPassword string      `json:"-" gorm:"not null"`
	LastLoginAt    *time.Time  `json:"last_login_at"`
	Profile        UserProfile `json:"profile" gorm:"foreignKey:UserID"`
}

// UserProfile holds the public face of a user inside studies.
type UserProfile struct {
	Model
	UserID          uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Nickname        string `json:"nickname" gorm:"not null"`
	ProfileImageURL string `json:"profile_image_url"`
}

// Blacklist holds access tokens revoked on logout.
type Blacklist struct {
	Model
	Token string `json:"token" gorm:"uniqueIndex;not null"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"email"`
	Password string `json:"password" binding:"required"`
	Nickname string `json:"nickname" binding:"required,min=2,max=30" conform:"trim"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" conform:"email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string `json:"access_token"`
}

type GetMyProfileResponse struct {
	UserID          uint       `json:"user_id"`
	Email           string     `json:"email"`
	Nickname        string     `json:"nickname"`
	ProfileImageURL string     `json:"profile_image_url"`
	LastLoginAt     *time.Time `json:"last_login_at"`
}

func ValidatePassword(password string) error {
	passwordValidator := goval.New(goval.MinLength(6, errors.New("password cant be less than 6 characters")),
		goval.MaxLength(15, errors.New("password cant be more than 15 characters")))
	err := passwordValidator.Validate(password)
	return err
}

// VerifyPassword verifies the collected password with the user's hashed password
func (u *User) VerifyPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password))
}
