package services

import (
	"fmt"
	"strings"

	"github.com/techagentng/studyfocus/db"
	apiError "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/models"
)

// NotificationKind names the events that produce a study notification.
type NotificationKind int

const (
	KindAssignment NotificationKind = iota
	KindAnnouncement
	KindNewMember
	KindOutMember
	KindNewApplication
)

type notificationTemplate struct {
	audience models.AudienceType
	// subject is the actor's nickname instead of a caller supplied title
	byNickname  bool
	title       string
	description string
}

var notificationTemplates = map[NotificationKind]notificationTemplate{
	KindAssignment: {
		audience:    models.AudienceAllMembers,
		title:       "{subject} assignment posted.",
		description: "{subject} was posted on the assignment board. Check the due date and submit before it.",
	},
	KindAnnouncement: {
		audience:    models.AudienceAllMembers,
		title:       "{subject} announcement posted",
		description: "{subject} was posted on the notice board. Members, please take a look.",
	},
	KindNewMember: {
		audience:    models.AudienceAllMembers,
		byNickname:  true,
		title:       "{subject} has joined!",
		description: "{subject} is new to the study! Please give them a warm welcome~",
	},
	KindOutMember: {
		audience:    models.AudienceAllMembers,
		byNickname:  true,
		title:       "Member left",
		description: "{subject} has left the study.",
	},
	KindNewApplication: {
		audience:    models.AudienceLeaderOnly,
		title:       "New application",
		description: "A new applicant is waiting for approval. Leader, please review it.",
	},
}

const subjectVerb = "{subject}"

func render(format, subject string) string {
	return strings.ReplaceAll(format, subjectVerb, subject)
}

type NotificationService interface {
	GetNotifications(studyID, userID uint) ([]models.NotificationListItem, error)
	GetNotificationDetail(studyID, notificationID, userID uint) (*models.NotificationDetail, error)
	AddAssignmentNotification(study *models.Study, actorID uint, assignmentTitle string) error
	AddAnnouncementNotification(study *models.Study, actorID uint, announcementTitle string) error
	AddNewMemberNotification(study *models.Study, actorID uint) error
	AddOutMemberNotification(study *models.Study, actorID uint) error
	AddNewApplicationNotification(study *models.Study, actorID uint) error
	// Compose builds an unsaved notification so callers can persist it with their own change.
	Compose(kind NotificationKind, studyID, actorID uint, subject string) (*models.Notification, error)
	// Deliver pushes an already persisted notification to devices, mail and live listeners.
	Deliver(notification *models.Notification)
	// Revoke cuts off live delivery to a user who is no longer a member of the study.
	Revoke(studyID, userID uint)
}

type notificationService struct {
	groupService     GroupService
	studyRepo        db.StudyRepository
	memberRepo       db.StudyMemberRepository
	profileRepo      db.UserProfileRepository
	notificationRepo db.NotificationRepository
	dispatcher       NotificationDispatcher
}

func NewNotificationService(groupService GroupService, studyRepo db.StudyRepository, memberRepo db.StudyMemberRepository,
	profileRepo db.UserProfileRepository, notificationRepo db.NotificationRepository, dispatcher NotificationDispatcher) NotificationService {
	return &notificationService{
		groupService:     groupService,
		studyRepo:        studyRepo,
		memberRepo:       memberRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		dispatcher:       dispatcher,
	}
}

func (s *notificationService) GetNotifications(studyID, userID uint) ([]models.NotificationListItem, error) {
	if _, err := s.groupService.MemberValidation(studyID, userID); err != nil {
		return nil, err
	}
	if _, err := s.studyRepo.FindStudyByID(studyID); err != nil {
		return nil, notFoundAs(err, apiError.ErrInvalidRequest)
	}

	notifications, err := s.notificationRepo.FindAllByStudyID(studyID)
	if err != nil {
		return nil, err
	}

	items := make([]models.NotificationListItem, 0, len(notifications))
	for _, n := range notifications {
		items = append(items, models.NotificationListItem{
			ID:           n.ID,
			Title:        n.Title,
			AudienceType: n.AudienceType,
		})
	}
	return items, nil
}

func (s *notificationService) GetNotificationDetail(studyID, notificationID, userID uint) (*models.NotificationDetail, error) {
	if _, err := s.groupService.MemberValidation(studyID, userID); err != nil {
		return nil, err
	}
	if _, err := s.studyRepo.FindStudyByID(studyID); err != nil {
		return nil, notFoundAs(err, apiError.ErrInvalidRequest)
	}

	notification, err := s.notificationRepo.FindNotificationByID(notificationID)
	if err != nil {
		return nil, notFoundAs(err, apiError.ErrInvalidRequest)
	}
	if notification.StudyID != studyID {
		return nil, apiError.ErrInvalidRequest
	}

	return &models.NotificationDetail{
		Title:       notification.Title,
		Description: notification.Description,
		CreatedAt:   notification.CreatedAt,
	}, nil
}

func (s *notificationService) AddAssignmentNotification(study *models.Study, actorID uint, assignmentTitle string) error {
	return s.add(KindAssignment, study, actorID, assignmentTitle)
}

func (s *notificationService) AddAnnouncementNotification(study *models.Study, actorID uint, announcementTitle string) error {
	return s.add(KindAnnouncement, study, actorID, announcementTitle)
}

func (s *notificationService) AddNewMemberNotification(study *models.Study, actorID uint) error {
	return s.add(KindNewMember, study, actorID, "")
}

func (s *notificationService) AddOutMemberNotification(study *models.Study, actorID uint) error {
	return s.add(KindOutMember, study, actorID, "")
}

func (s *notificationService) AddNewApplicationNotification(study *models.Study, actorID uint) error {
	return s.add(KindNewApplication, study, actorID, "")
}

func (s *notificationService) add(kind NotificationKind, study *models.Study, actorID uint, subject string) error {
	notification, err := s.Compose(kind, study.ID, actorID, subject)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		return err
	}
	s.Deliver(notification)
	return nil
}

func (s *notificationService) Compose(kind NotificationKind, studyID, actorID uint, subject string) (*models.Notification, error) {
	tmpl, ok := notificationTemplates[kind]
	if !ok {
		return nil, fmt.Errorf("unknown notification kind %d", kind)
	}

	actor, err := s.memberRepo.FindByStudyIDAndUserID(studyID, actorID)
	if err != nil {
		return nil, notFoundAs(err, apiError.ErrInvalidRequest)
	}

	if tmpl.byNickname {
		profile, err := s.profileRepo.FindProfileByUserID(actor.UserID)
		if err != nil {
			return nil, notFoundAs(err, apiError.ErrInvalidRequest)
		}
		subject = profile.Nickname
	}

	return &models.Notification{
		StudyID:      studyID,
		ActorID:      actor.ID,
		AudienceType: tmpl.audience,
		Title:        render(tmpl.title, subject),
		Description:  render(tmpl.description, subject),
	}, nil
}

func (s *notificationService) Deliver(notification *models.Notification) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Dispatch(notification)
}

func (s *notificationService) Revoke(studyID, userID uint) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Revoke(studyID, userID)
}
