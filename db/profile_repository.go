package db

import (
	"github.com/pkg/errors"
	"github.com/techagentng/studyfocus/models"
	"gorm.io/gorm"
)

type UserProfileRepository interface {
	FindProfileByUserID(userID uint) (*models.UserProfile, error)
	UpdateProfileImage(userID uint, imageURL string) error
}

type userProfileRepo struct {
	DB *gorm.DB
}

func NewUserProfileRepo(db *GormDB) UserProfileRepository {
	return &userProfileRepo{db.DB}
}

func (r *userProfileRepo) FindProfileByUserID(userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, errors.Wrap(err, "find profile by user")
	}
	return &profile, nil
}

func (r *userProfileRepo) UpdateProfileImage(userID uint, imageURL string) error {
	res := r.DB.Model(&models.UserProfile{}).Where("user_id = ?", userID).Update("profile_image_url", imageURL)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update profile image")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "update profile image")
	}
	return nil
}
