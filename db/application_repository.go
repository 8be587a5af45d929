package db

import (
	"github.com/pkg/errors"
	"github.com/techagentng/studyfocus/models"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	CreateApplication(application *models.Application) error
	FindApplicationByID(id uint) (*models.Application, error)
	HasSubmittedApplication(studyID, userID uint) (bool, error)
	AcceptApplication(application *models.Application, member *models.StudyMember) error
	RejectApplication(application *models.Application) error
}

type applicationRepo struct {
	DB *gorm.DB
}

func NewApplicationRepo(db *GormDB) ApplicationRepository {
	return &applicationRepo{db.DB}
}

func (r *applicationRepo) CreateApplication(application *models.Application) error {
	return errors.Wrap(r.DB.Create(application).Error, "create application")
}

func (r *applicationRepo) FindApplicationByID(id uint) (*models.Application, error) {
	var application models.Application
	if err := r.DB.First(&application, id).Error; err != nil {
		return nil, errors.Wrap(err, "find application")
	}
	return &application, nil
}

func (r *applicationRepo) HasSubmittedApplication(studyID, userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Application{}).
		Where("study_id = ? AND user_id = ? AND status = ?", studyID, userID, models.ApplicationSubmitted).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "count applications")
	}
	return count > 0, nil
}

// AcceptApplication closes the application and inserts the new member together.
func (r *applicationRepo) AcceptApplication(application *models.Application, member *models.StudyMember) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := closeApplication(tx, application, models.ApplicationAccepted); err != nil {
			return err
		}
		if err := tx.Create(member).Error; err != nil {
			return errors.Wrap(err, "create study member")
		}
		return nil
	})
}

func (r *applicationRepo) RejectApplication(application *models.Application) error {
	return closeApplication(r.DB, application, models.ApplicationRejected)
}

func closeApplication(tx *gorm.DB, application *models.Application, status models.ApplicationStatus) error {
	res := tx.Model(&models.Application{}).
		Where("id = ? AND status = ?", application.ID, models.ApplicationSubmitted).
		Update("status", status)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update application status")
	}
	if res.RowsAffected == 0 {
		return errors.Wrap(gorm.ErrRecordNotFound, "update application status")
	}
	application.Status = status
	return nil
}
