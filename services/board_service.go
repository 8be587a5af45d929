package services

import (
	"github.com/techagentng/studyfocus/db"
	"github.com/techagentng/studyfocus/models"
)

// BoardService posts to the assignment and notice boards of a study.
type BoardService interface {
	PostAssignment(studyID, userID uint, req *models.CreateAssignmentRequest) (*models.Assignment, error)
	PostAnnouncement(studyID, userID uint, req *models.CreateAnnouncementRequest) (*models.Announcement, error)
}

type boardService struct {
	boardRepo           db.BoardRepository
	groupService        GroupService
	notificationService NotificationService
}

func NewBoardService(boardRepo db.BoardRepository, groupService GroupService, notificationService NotificationService) BoardService {
	return &boardService{
		boardRepo:           boardRepo,
		groupService:        groupService,
		notificationService: notificationService,
	}
}

func (s *boardService) PostAssignment(studyID, userID uint, req *models.CreateAssignmentRequest) (*models.Assignment, error) {
	author, err := s.groupService.LeaderValidation(studyID, userID)
	if err != nil {
		return nil, err
	}

	notification, err := s.notificationService.Compose(KindAssignment, studyID, userID, req.Title)
	if err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		StudyID:     studyID,
		AuthorID:    author.ID,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
	}
	if err := s.boardRepo.CreateAssignment(assignment, notification); err != nil {
		return nil, err
	}

	s.notificationService.Deliver(notification)
	return assignment, nil
}

func (s *boardService) PostAnnouncement(studyID, userID uint, req *models.CreateAnnouncementRequest) (*models.Announcement, error) {
	author, err := s.groupService.LeaderValidation(studyID, userID)
	if err != nil {
		return nil, err
	}

	notification, err := s.notificationService.Compose(KindAnnouncement, studyID, userID, req.Title)
	if err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		StudyID:     studyID,
		AuthorID:    author.ID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.boardRepo.CreateAnnouncement(announcement, notification); err != nil {
		return nil, err
	}

	s.notificationService.Deliver(notification)
	return announcement, nil
}
