package services

import (
	log "github.com/sirupsen/logrus"
	"github.com/techagentng/studyfocus/db"
	apiError "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/models"
)

type StudyMemberService interface {
	GetMembers(studyID, userID uint) (*models.GetStudyMembersResponse, error)
	LeaveStudy(studyID, requestUserID uint) error
	ExpelMember(studyID, expelUserID, requestUserID uint) error
}

type studyMemberService struct {
	memberRepo          db.StudyMemberRepository
	groupService        GroupService
	notificationService NotificationService
}

func NewStudyMemberService(memberRepo db.StudyMemberRepository, groupService GroupService, notificationService NotificationService) StudyMemberService {
	return &studyMemberService{
		memberRepo:          memberRepo,
		groupService:        groupService,
		notificationService: notificationService,
	}
}

// GetMembers lists the JOINED members of a study for one of its members.
func (s *studyMemberService) GetMembers(studyID, userID uint) (*models.GetStudyMembersResponse, error) {
	if _, err := s.groupService.MemberValidation(studyID, userID); err != nil {
		return nil, err
	}

	joined, err := s.memberRepo.FindAllByStudyIDAndStatus(studyID, models.StudyMemberJoined)
	if err != nil {
		return nil, err
	}

	members := make([]models.StudyMemberDto, 0, len(joined))
	for _, m := range joined {
		members = append(members, models.StudyMemberDto{
			UserID:          m.UserID,
			Nickname:        m.User.Profile.Nickname,
			ProfileImageURL: m.User.Profile.ProfileImageURL,
			Role:            string(m.Role),
			LastLoginAt:     m.User.LastLoginAt,
		})
	}

	return &models.GetStudyMembersResponse{StudyID: studyID, Members: members}, nil
}

// LeaveStudy lets a member quit. The leader cannot leave because there is no hand-over.
func (s *studyMemberService) LeaveStudy(studyID, requestUserID uint) error {
	member, err := s.memberRepo.FindByStudyIDAndUserIDAndStatus(studyID, requestUserID, models.StudyMemberJoined)
	if err != nil {
		return notFoundAs(err, apiError.ErrInvalidParameter)
	}

	if member.Role == models.StudyRoleLeader {
		return apiError.ErrInvalidRequest
	}

	return s.softDelete(member, models.StudyMemberLeft)
}

// ExpelMember bans a JOINED member; only the leader may do it and never on themselves.
func (s *studyMemberService) ExpelMember(studyID, expelUserID, requestUserID uint) error {
	leader, err := s.memberRepo.FindByStudyIDAndRole(studyID, models.StudyRoleLeader)
	if err != nil {
		return notFoundAs(err, apiError.ErrInvalidRequest)
	}
	if leader.UserID != requestUserID {
		return apiError.ErrURLForbidden
	}

	if requestUserID == expelUserID {
		return apiError.ErrInvalidRequest
	}

	target, err := s.memberRepo.FindByStudyIDAndUserIDAndStatus(studyID, expelUserID, models.StudyMemberJoined)
	if err != nil {
		return notFoundAs(err, apiError.ErrInvalidParameter)
	}

	return s.softDelete(target, models.StudyMemberBanned)
}

func (s *studyMemberService) softDelete(member *models.StudyMember, status models.StudyMemberStatus) error {
	notification, err := s.notificationService.Compose(KindOutMember, member.StudyID, member.UserID, "")
	if err != nil {
		return err
	}

	if err := s.memberRepo.UpdateStatusWithNotification(member, status, notification); err != nil {
		return notFoundAs(err, apiError.ErrInvalidParameter)
	}

	log.WithFields(log.Fields{
		"study_id": member.StudyID,
		"user_id":  member.UserID,
		"status":   status,
	}).Info("study member removed")

	s.notificationService.Revoke(member.StudyID, member.UserID)
	s.notificationService.Deliver(notification)
	return nil
}
