package db

import (
	"github.com/pkg/errors"
	"github.com/techagentng/studyfocus/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	FindAllByStudyID(studyID uint) ([]models.Notification, error)
	FindNotificationByID(id uint) (*models.Notification, error)
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (r *notificationRepo) CreateNotification(notification *models.Notification) error {
	return errors.Wrap(r.DB.Create(notification).Error, "create notification")
}

// FindAllByStudyID lists newest first; id breaks ties between rows created in the same instant.
func (r *notificationRepo) FindAllByStudyID(studyID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.DB.Where("study_id = ?", studyID).
		Order("created_at desc").
		Order("id desc").
		Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "list notifications")
	}
	return notifications, nil
}

func (r *notificationRepo) FindNotificationByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.DB.First(&notification, id).Error; err != nil {
		return nil, errors.Wrap(err, "find notification")
	}
	return &notification, nil
}
