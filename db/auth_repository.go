package db

import (
	"time"

	"github.com/pkg/errors"
	"github.com/techagentng/studyfocus/models"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already exists")

type AuthRepository interface {
	CreateUserWithProfile(user *models.User, profile *models.UserProfile) error
	IsEmailExist(email string) error
	FindUserByEmail(email string) (*models.User, error)
	FindUserByID(id uint) (*models.User, error)
	UpdateLastLogin(userID uint, at time.Time) error
	AddToBlackList(blacklist *models.Blacklist) error
	IsTokenInBlacklist(token string) bool
}

type authRepo struct {
	DB *gorm.DB
}

func NewAuthRepo(db *GormDB) AuthRepository {
	return &authRepo{db.DB}
}

// CreateUserWithProfile inserts the account and its profile together.
func (a *authRepo) CreateUserWithProfile(user *models.User, profile *models.UserProfile) error {
	tx := a.DB.Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin transaction")
	}

	if err := tx.Omit("Profile").Create(user).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "create user")
	}

	profile.UserID = user.ID
	if err := tx.Create(profile).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "create user profile")
	}
	user.Profile = *profile

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "commit user")
	}
	return nil
}

func (a *authRepo) IsEmailExist(email string) error {
	var count int64
	err := a.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "gorm count error")
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}

func (a *authRepo) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := a.DB.Preload("Profile").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, errors.Wrap(err, "find user by email")
	}
	return &user, nil
}

func (a *authRepo) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	err := a.DB.Preload("Profile").Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, errors.Wrap(err, "find user by id")
	}
	return &user, nil
}

func (a *authRepo) UpdateLastLogin(userID uint, at time.Time) error {
	err := a.DB.Model(&models.User{}).Where("id = ?", userID).Update("last_login_at", at).Error
	return errors.Wrap(err, "update last login")
}

func (a *authRepo) AddToBlackList(blacklist *models.Blacklist) error {
	return errors.Wrap(a.DB.Create(blacklist).Error, "add token to blacklist")
}

func (a *authRepo) IsTokenInBlacklist(token string) bool {
	var count int64
	if err := a.DB.Model(&models.Blacklist{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return true
	}
	return count > 0
}
