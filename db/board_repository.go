package db

import (
	"github.com/pkg/errors"
	"github.com/techagentng/studyfocus/models"
	"gorm.io/gorm"
)

// BoardRepository stores assignment and announcement posts.
type BoardRepository interface {
	CreateAssignment(assignment *models.Assignment, notification *models.Notification) error
	CreateAnnouncement(announcement *models.Announcement, notification *models.Notification) error
}

type boardRepo struct {
	DB *gorm.DB
}

func NewBoardRepo(db *GormDB) BoardRepository {
	return &boardRepo{db.DB}
}

func (r *boardRepo) CreateAssignment(assignment *models.Assignment, notification *models.Notification) error {
	return r.createWithNotification(assignment, notification)
}

func (r *boardRepo) CreateAnnouncement(announcement *models.Announcement, notification *models.Notification) error {
	return r.createWithNotification(announcement, notification)
}

func (r *boardRepo) createWithNotification(post interface{}, notification *models.Notification) error {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin transaction")
	}

	if err := tx.Create(post).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "create post")
	}
	if err := tx.Create(notification).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "create notification")
	}

	return errors.Wrap(tx.Commit().Error, "commit post")
}
