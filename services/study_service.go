package services

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/techagentng/studyfocus/db"
	apiError "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/models"
	"gorm.io/gorm"
)

type StudyService interface {
	CreateStudy(userID uint, req *models.CreateStudyRequest) (*models.Study, error)
	GetStudy(studyID uint) (*models.Study, error)
	Apply(studyID, userID uint, req *models.ApplyRequest) (*models.Application, error)
	AcceptApplication(studyID, applicationID, requestUserID uint) error
	RejectApplication(studyID, applicationID, requestUserID uint) error
}

type studyService struct {
	studyRepo           db.StudyRepository
	memberRepo          db.StudyMemberRepository
	applicationRepo     db.ApplicationRepository
	groupService        GroupService
	notificationService NotificationService
}

func NewStudyService(studyRepo db.StudyRepository, memberRepo db.StudyMemberRepository, applicationRepo db.ApplicationRepository,
	groupService GroupService, notificationService NotificationService) StudyService {
	return &studyService{
		studyRepo:           studyRepo,
		memberRepo:          memberRepo,
		applicationRepo:     applicationRepo,
		groupService:        groupService,
		notificationService: notificationService,
	}
}

func (s *studyService) CreateStudy(userID uint, req *models.CreateStudyRequest) (*models.Study, error) {
	study := &models.Study{
		Title:       req.Title,
		Description: req.Description,
	}
	if _, err := s.studyRepo.CreateStudyWithLeader(study, userID); err != nil {
		return nil, err
	}
	return study, nil
}

func (s *studyService) GetStudy(studyID uint) (*models.Study, error) {
	study, err := s.studyRepo.FindStudyByID(studyID)
	if err != nil {
		return nil, notFoundAs(err, apiError.ErrNotFound)
	}
	return study, nil
}

// Apply files a join request. Anyone who ever had a membership row, or already waits, is refused.
func (s *studyService) Apply(studyID, userID uint, req *models.ApplyRequest) (*models.Application, error) {
	study, err := s.studyRepo.FindStudyByID(studyID)
	if err != nil {
		return nil, notFoundAs(err, apiError.ErrInvalidRequest)
	}

	_, err = s.memberRepo.FindByStudyIDAndUserID(studyID, userID)
	switch {
	case err == nil:
		return nil, apiError.ErrInvalidRequest
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	pending, err := s.applicationRepo.HasSubmittedApplication(studyID, userID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apiError.ErrInvalidRequest
	}

	application := &models.Application{
		StudyID: studyID,
		UserID:  userID,
		Content: req.Content,
		Status:  models.ApplicationSubmitted,
	}
	if err := s.applicationRepo.CreateApplication(application); err != nil {
		return nil, err
	}

	leader, err := s.memberRepo.FindByStudyIDAndRole(studyID, models.StudyRoleLeader)
	if err == nil {
		err = s.notificationService.AddNewApplicationNotification(study, leader.UserID)
	}
	if err != nil {
		log.WithError(err).WithField("study_id", studyID).Warn("new application notification failed")
	}

	return application, nil
}

func (s *studyService) AcceptApplication(studyID, applicationID, requestUserID uint) error {
	application, err := s.submittedApplication(studyID, applicationID, requestUserID)
	if err != nil {
		return err
	}

	member := &models.StudyMember{
		StudyID: studyID,
		UserID:  application.UserID,
		Role:    models.StudyRoleMember,
		Status:  models.StudyMemberJoined,
	}
	if err := s.applicationRepo.AcceptApplication(application, member); err != nil {
		return notFoundAs(err, apiError.ErrInvalidParameter)
	}

	study, err := s.studyRepo.FindStudyByID(studyID)
	if err == nil {
		err = s.notificationService.AddNewMemberNotification(study, member.UserID)
	}
	if err != nil {
		log.WithError(err).WithField("study_id", studyID).Warn("new member notification failed")
	}
	return nil
}

func (s *studyService) RejectApplication(studyID, applicationID, requestUserID uint) error {
	application, err := s.submittedApplication(studyID, applicationID, requestUserID)
	if err != nil {
		return err
	}
	if err := s.applicationRepo.RejectApplication(application); err != nil {
		return notFoundAs(err, apiError.ErrInvalidParameter)
	}
	return nil
}

// submittedApplication checks the leader and that the application is still open for this study.
func (s *studyService) submittedApplication(studyID, applicationID, requestUserID uint) (*models.Application, error) {
	if _, err := s.groupService.LeaderValidation(studyID, requestUserID); err != nil {
		return nil, err
	}

	application, err := s.applicationRepo.FindApplicationByID(applicationID)
	if err != nil {
		return nil, notFoundAs(err, apiError.ErrInvalidParameter)
	}
	if application.StudyID != studyID || application.Status != models.ApplicationSubmitted {
		return nil, apiError.ErrInvalidParameter
	}
	return application, nil
}
