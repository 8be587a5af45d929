package db

import (
	"github.com/pkg/errors"
	"github.com/techagentng/studyfocus/models"
	"gorm.io/gorm"
)

type StudyRepository interface {
	CreateStudyWithLeader(study *models.Study, leaderUserID uint) (*models.StudyMember, error)
	FindStudyByID(id uint) (*models.Study, error)
}

type studyRepo struct {
	DB *gorm.DB
}

func NewStudyRepo(db *GormDB) StudyRepository {
	return &studyRepo{db.DB}
}

// CreateStudyWithLeader stores a new study and makes leaderUserID its JOINED leader.
func (r *studyRepo) CreateStudyWithLeader(study *models.Study, leaderUserID uint) (*models.StudyMember, error) {
	tx := r.DB.Begin()
	if tx.Error != nil {
		return nil, errors.Wrap(tx.Error, "begin transaction")
	}

	if err := tx.Create(study).Error; err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "create study")
	}

	leader := &models.StudyMember{
		StudyID: study.ID,
		UserID:  leaderUserID,
		Role:    models.StudyRoleLeader,
		Status:  models.StudyMemberJoined,
	}
	if err := tx.Create(leader).Error; err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "create study leader")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, errors.Wrap(err, "commit study")
	}
	return leader, nil
}

func (r *studyRepo) FindStudyByID(id uint) (*models.Study, error) {
	var study models.Study
	if err := r.DB.First(&study, id).Error; err != nil {
		return nil, errors.Wrap(err, "find study")
	}
	return &study, nil
}
