package services

import (
	"github.com/techagentng/studyfocus/db"
	apiError "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/models"
)

// GroupService answers "may this user act inside this study" questions.
type GroupService interface {
	MemberValidation(studyID, userID uint) (*models.StudyMember, error)
	LeaderValidation(studyID, userID uint) (*models.StudyMember, error)
}

type groupService struct {
	memberRepo db.StudyMemberRepository
}

func NewGroupService(memberRepo db.StudyMemberRepository) GroupService {
	return &groupService{memberRepo: memberRepo}
}

// MemberValidation requires userID to be a JOINED member of the study.
func (s *groupService) MemberValidation(studyID, userID uint) (*models.StudyMember, error) {
	member, err := s.memberRepo.FindByStudyIDAndUserIDAndStatus(studyID, userID, models.StudyMemberJoined)
	if err != nil {
		return nil, notFoundAs(err, apiError.ErrURLForbidden)
	}
	return member, nil
}

// LeaderValidation requires userID to be the JOINED leader of the study.
func (s *groupService) LeaderValidation(studyID, userID uint) (*models.StudyMember, error) {
	member, err := s.MemberValidation(studyID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role != models.StudyRoleLeader {
		return nil, apiError.ErrURLForbidden
	}
	return member, nil
}
