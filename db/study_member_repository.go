package db

import (
	"github.com/pkg/errors"
	"github.com/techagentng/studyfocus/models"
	"gorm.io/gorm"
)

type StudyMemberRepository interface {
	FindByStudyIDAndUserID(studyID, userID uint) (*models.StudyMember, error)
	FindByStudyIDAndUserIDAndStatus(studyID, userID uint, status models.StudyMemberStatus) (*models.StudyMember, error)
	FindByStudyIDAndRole(studyID uint, role models.StudyRole) (*models.StudyMember, error)
	FindAllByStudyIDAndStatus(studyID uint, status models.StudyMemberStatus) ([]models.StudyMember, error)
	UpdateStatusWithNotification(member *models.StudyMember, status models.StudyMemberStatus, notification *models.Notification) error
}

type studyMemberRepo struct {
	DB *gorm.DB
}

func NewStudyMemberRepo(db *GormDB) StudyMemberRepository {
	return &studyMemberRepo{db.DB}
}

func (r *studyMemberRepo) FindByStudyIDAndUserID(studyID, userID uint) (*models.StudyMember, error) {
	var member models.StudyMember
	err := r.DB.Where("study_id = ? AND user_id = ?", studyID, userID).First(&member).Error
	if err != nil {
		return nil, errors.Wrap(err, "find study member")
	}
	return &member, nil
}

func (r *studyMemberRepo) FindByStudyIDAndUserIDAndStatus(studyID, userID uint, status models.StudyMemberStatus) (*models.StudyMember, error) {
	var member models.StudyMember
	err := r.DB.Where("study_id = ? AND user_id = ? AND status = ?", studyID, userID, status).First(&member).Error
	if err != nil {
		return nil, errors.Wrap(err, "find study member by status")
	}
	return &member, nil
}

func (r *studyMemberRepo) FindByStudyIDAndRole(studyID uint, role models.StudyRole) (*models.StudyMember, error) {
	var member models.StudyMember
	err := r.DB.Preload("User").Where("study_id = ? AND role = ?", studyID, role).First(&member).Error
	if err != nil {
		return nil, errors.Wrap(err, "find study member by role")
	}
	return &member, nil
}

// FindAllByStudyIDAndStatus returns members with their user and profile loaded, in join order.
func (r *studyMemberRepo) FindAllByStudyIDAndStatus(studyID uint, status models.StudyMemberStatus) ([]models.StudyMember, error) {
	var members []models.StudyMember
	err := r.DB.Preload("User.Profile").
		Where("study_id = ? AND status = ?", studyID, status).
		Order("id asc").
		Find(&members).Error
	if err != nil {
		return nil, errors.Wrap(err, "list study members")
	}
	return members, nil
}

// UpdateStatusWithNotification soft deletes a member and records the notification in one transaction.
func (r *studyMemberRepo) UpdateStatusWithNotification(member *models.StudyMember, status models.StudyMemberStatus, notification *models.Notification) error {
	target := *member
	if !target.UpdateStatus(status) {
		return errors.Wrap(gorm.ErrRecordNotFound, "update member status")
	}

	tx := r.DB.Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin transaction")
	}

	res := tx.Model(&models.StudyMember{}).
		Where("id = ? AND status = ?", member.ID, models.StudyMemberJoined).
		Update("status", target.Status)
	if res.Error != nil {
		tx.Rollback()
		return errors.Wrap(res.Error, "update member status")
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return errors.Wrap(gorm.ErrRecordNotFound, "update member status")
	}

	if err := tx.Create(notification).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "create notification")
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "commit member status")
	}
	member.Status = target.Status
	return nil
}
