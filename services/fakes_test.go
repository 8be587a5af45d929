package services

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/techagentng/studyfocus/db"
	"github.com/techagentng/studyfocus/models"
	"gorm.io/gorm"
)

// memoryStore implements every repository interface the services use.
type memoryStore struct {
	mu sync.Mutex

	nextID        uint
	base          time.Time
	users         map[uint]*models.User
	profiles      map[uint]*models.UserProfile // user id -> profile
	studies       map[uint]*models.Study
	members       []*models.StudyMember
	notifications []*models.Notification
	applications  map[uint]*models.Application
	assignments   []*models.Assignment
	announcements []*models.Announcement
	blacklist     map[string]bool

	nextErr map[string]error
}

var (
	_ db.AuthRepository         = (*memoryStore)(nil)
	_ db.UserProfileRepository  = (*memoryStore)(nil)
	_ db.StudyRepository        = (*memoryStore)(nil)
	_ db.StudyMemberRepository  = (*memoryStore)(nil)
	_ db.NotificationRepository = (*memoryStore)(nil)
	_ db.ApplicationRepository  = (*memoryStore)(nil)
	_ db.BoardRepository        = (*memoryStore)(nil)
)

func newMemoryStore() *memoryStore {
	return &memoryStore{
		nextID:       100,
		base:         time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		users:        make(map[uint]*models.User),
		profiles:     make(map[uint]*models.UserProfile),
		studies:      make(map[uint]*models.Study),
		applications: make(map[uint]*models.Application),
		blacklist:    make(map[string]bool),
		nextErr:      make(map[string]error),
	}
}

func notFound(op string) error {
	return errors.Wrap(gorm.ErrRecordNotFound, op)
}

func (s *memoryStore) setErr(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextErr[op] = err
}

func (s *memoryStore) takeErr(op string) error {
	if err, ok := s.nextErr[op]; ok {
		delete(s.nextErr, op)
		return err
	}
	return nil
}

func (s *memoryStore) newModel() models.Model {
	s.nextID++
	at := s.base.Add(time.Duration(s.nextID) * time.Second)
	return models.Model{ID: s.nextID, CreatedAt: at, UpdatedAt: at}
}

// seeding helpers, used by tests directly

func (s *memoryStore) addUser(id uint, email, nickname string) {
	s.users[id] = &models.User{Model: models.Model{ID: id}, Email: email}
	s.profiles[id] = &models.UserProfile{Model: models.Model{ID: id}, UserID: id, Nickname: nickname}
}

func (s *memoryStore) addStudy(id uint, title string) *models.Study {
	study := &models.Study{Model: models.Model{ID: id}, Title: title}
	s.studies[id] = study
	return study
}

func (s *memoryStore) addMember(id, studyID, userID uint, role models.StudyRole, status models.StudyMemberStatus) {
	s.members = append(s.members, &models.StudyMember{
		Model:   models.Model{ID: id},
		StudyID: studyID,
		UserID:  userID,
		Role:    role,
		Status:  status,
	})
}

func (s *memoryStore) member(studyID, userID uint) *models.StudyMember {
	for _, m := range s.members {
		if m.StudyID == studyID && m.UserID == userID {
			return m
		}
	}
	return nil
}

// AuthRepository

func (s *memoryStore) CreateUserWithProfile(user *models.User, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr("CreateUserWithProfile"); err != nil {
		return err
	}
	user.Model = s.newModel()
	profile.Model = s.newModel()
	profile.UserID = user.ID
	u := *user
	p := *profile
	s.users[user.ID] = &u
	s.profiles[user.ID] = &p
	return nil
}

func (s *memoryStore) IsEmailExist(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return db.ErrEmailTaken
		}
	}
	return nil
}

func (s *memoryStore) FindUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return s.userWithProfile(u), nil
		}
	}
	return nil, notFound("find user by email")
}

func (s *memoryStore) FindUserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, notFound("find user by id")
	}
	return s.userWithProfile(u), nil
}

func (s *memoryStore) userWithProfile(u *models.User) *models.User {
	cp := *u
	if p, ok := s.profiles[u.ID]; ok {
		cp.Profile = *p
	}
	return &cp
}

func (s *memoryStore) UpdateLastLogin(userID uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.LastLoginAt = &at
	}
	return nil
}

func (s *memoryStore) AddToBlackList(blacklist *models.Blacklist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[blacklist.Token] = true
	return nil
}

func (s *memoryStore) IsTokenInBlacklist(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blacklist[token]
}

// UserProfileRepository

func (s *memoryStore) FindProfileByUserID(userID uint) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, notFound("find profile by user")
	}
	cp := *p
	return &cp, nil
}

func (s *memoryStore) UpdateProfileImage(userID uint, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return notFound("update profile image")
	}
	p.ProfileImageURL = imageURL
	return nil
}

// StudyRepository

func (s *memoryStore) CreateStudyWithLeader(study *models.Study, leaderUserID uint) (*models.StudyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr("CreateStudyWithLeader"); err != nil {
		return nil, err
	}
	study.Model = s.newModel()
	cp := *study
	s.studies[study.ID] = &cp
	leader := &models.StudyMember{
		Model:   s.newModel(),
		StudyID: study.ID,
		UserID:  leaderUserID,
		Role:    models.StudyRoleLeader,
		Status:  models.StudyMemberJoined,
	}
	s.members = append(s.members, leader)
	out := *leader
	return &out, nil
}

func (s *memoryStore) FindStudyByID(id uint) (*models.Study, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	study, ok := s.studies[id]
	if !ok {
		return nil, notFound("find study")
	}
	cp := *study
	return &cp, nil
}

// StudyMemberRepository

func (s *memoryStore) FindByStudyIDAndUserID(studyID, userID uint) (*models.StudyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr("FindByStudyIDAndUserID"); err != nil {
		return nil, err
	}
	m := s.member(studyID, userID)
	if m == nil {
		return nil, notFound("find study member")
	}
	cp := *m
	return &cp, nil
}

func (s *memoryStore) FindByStudyIDAndUserIDAndStatus(studyID, userID uint, status models.StudyMemberStatus) (*models.StudyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.member(studyID, userID)
	if m == nil || m.Status != status {
		return nil, notFound("find study member by status")
	}
	cp := *m
	return &cp, nil
}

func (s *memoryStore) FindByStudyIDAndRole(studyID uint, role models.StudyRole) (*models.StudyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.members {
		if m.StudyID == studyID && m.Role == role {
			cp := *m
			if u, ok := s.users[m.UserID]; ok {
				cp.User = *u
			}
			return &cp, nil
		}
	}
	return nil, notFound("find study member by role")
}

func (s *memoryStore) FindAllByStudyIDAndStatus(studyID uint, status models.StudyMemberStatus) ([]models.StudyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr("FindAllByStudyIDAndStatus"); err != nil {
		return nil, err
	}
	var out []models.StudyMember
	for _, m := range s.members {
		if m.StudyID != studyID || m.Status != status {
			continue
		}
		cp := *m
		if u, ok := s.users[m.UserID]; ok {
			cp.User = *s.userWithProfile(u)
		}
		out = append(out, cp)
	}
	return out, nil
}

func (s *memoryStore) UpdateStatusWithNotification(member *models.StudyMember, status models.StudyMemberStatus, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr("UpdateStatusWithNotification"); err != nil {
		return err
	}
	stored := s.member(member.StudyID, member.UserID)
	if stored == nil || !stored.UpdateStatus(status) {
		return notFound("update member status")
	}
	s.saveNotification(notification)
	member.Status = status
	return nil
}

// NotificationRepository

func (s *memoryStore) saveNotification(n *models.Notification) {
	n.Model = s.newModel()
	cp := *n
	s.notifications = append(s.notifications, &cp)
}

func (s *memoryStore) CreateNotification(notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr("CreateNotification"); err != nil {
		return err
	}
	s.saveNotification(notification)
	return nil
}

func (s *memoryStore) FindAllByStudyID(studyID uint) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.StudyID == studyID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *memoryStore) FindNotificationByID(id uint) (*models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.ID == id {
			cp := *n
			return &cp, nil
		}
	}
	return nil, notFound("find notification")
}

func (s *memoryStore) notificationsOf(studyID uint) []models.Notification {
	out, _ := s.FindAllByStudyID(studyID)
	return out
}

// ApplicationRepository

func (s *memoryStore) CreateApplication(application *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	application.Model = s.newModel()
	cp := *application
	s.applications[application.ID] = &cp
	return nil
}

func (s *memoryStore) FindApplicationByID(id uint) (*models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.applications[id]
	if !ok {
		return nil, notFound("find application")
	}
	cp := *a
	return &cp, nil
}

func (s *memoryStore) HasSubmittedApplication(studyID, userID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.applications {
		if a.StudyID == studyID && a.UserID == userID && a.Status == models.ApplicationSubmitted {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) closeApplication(application *models.Application, status models.ApplicationStatus) error {
	stored, ok := s.applications[application.ID]
	if !ok || stored.Status != models.ApplicationSubmitted {
		return notFound("update application status")
	}
	stored.Status = status
	application.Status = status
	return nil
}

func (s *memoryStore) AcceptApplication(application *models.Application, member *models.StudyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.closeApplication(application, models.ApplicationAccepted); err != nil {
		return err
	}
	member.Model = s.newModel()
	cp := *member
	s.members = append(s.members, &cp)
	return nil
}

func (s *memoryStore) RejectApplication(application *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeApplication(application, models.ApplicationRejected)
}

// BoardRepository

func (s *memoryStore) CreateAssignment(assignment *models.Assignment, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr("CreateAssignment"); err != nil {
		return err
	}
	assignment.Model = s.newModel()
	cp := *assignment
	s.assignments = append(s.assignments, &cp)
	s.saveNotification(notification)
	return nil
}

func (s *memoryStore) CreateAnnouncement(announcement *models.Announcement, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	announcement.Model = s.newModel()
	cp := *announcement
	s.announcements = append(s.announcements, &cp)
	s.saveNotification(notification)
	return nil
}

// recordingDispatcher remembers what would have been delivered.
type recordingDispatcher struct {
	mu         sync.Mutex
	dispatched []models.Notification
	revoked    []uint
}

func (d *recordingDispatcher) Revoke(studyID, userID uint) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked = append(d.revoked, userID)
}

func (d *recordingDispatcher) Wait() {}

func (d *recordingDispatcher) Dispatch(n *models.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatched = append(d.dispatched, *n)
}

type fixture struct {
	store               *memoryStore
	dispatcher          *recordingDispatcher
	groupService        GroupService
	notificationService NotificationService
	memberService       StudyMemberService
	studyService        StudyService
	boardService        BoardService
	study               *models.Study
}

const (
	studyID    uint = 1
	leaderID   uint = 10
	aliceID    uint = 11
	bobID      uint = 12
	formerID   uint = 13
	outsiderID uint = 14
)

// newFixture seeds study 1 with a leader, two joined members and one who already left.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemoryStore()
	store.addUser(leaderID, "leader@example.com", "leader")
	store.addUser(aliceID, "alice@example.com", "alice")
	store.addUser(bobID, "bob@example.com", "bob")
	store.addUser(formerID, "former@example.com", "former")
	store.addUser(outsiderID, "outsider@example.com", "outsider")
	study := store.addStudy(studyID, "Go study")
	store.addMember(1, studyID, leaderID, models.StudyRoleLeader, models.StudyMemberJoined)
	store.addMember(2, studyID, aliceID, models.StudyRoleMember, models.StudyMemberJoined)
	store.addMember(3, studyID, bobID, models.StudyRoleMember, models.StudyMemberJoined)
	store.addMember(4, studyID, formerID, models.StudyRoleMember, models.StudyMemberLeft)

	dispatcher := &recordingDispatcher{}
	group := NewGroupService(store)
	notifications := NewNotificationService(group, store, store, store, store, dispatcher)

	return &fixture{
		store:               store,
		dispatcher:          dispatcher,
		groupService:        group,
		notificationService: notifications,
		memberService:       NewStudyMemberService(store, group, notifications),
		studyService:        NewStudyService(store, store, store, group, notifications),
		boardService:        NewBoardService(store, group, notifications),
		study:               study,
	}
}
