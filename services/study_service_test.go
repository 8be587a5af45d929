package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apiError "github.com/techagentng/studyfocus/errors"
	"github.com/techagentng/studyfocus/models"
)

func TestCreateStudyMakesCreatorLeader(t *testing.T) {
	f := newFixture(t)

	study, err := f.studyService.CreateStudy(outsiderID, &models.CreateStudyRequest{Title: "Algorithms", Description: "weekly"})
	require.NoError(t, err)
	require.NotZero(t, study.ID)

	leader := f.store.member(study.ID, outsiderID)
	require.NotNil(t, leader)
	assert.Equal(t, models.StudyRoleLeader, leader.Role)
	assert.Equal(t, models.StudyMemberJoined, leader.Status)

	got, err := f.studyService.GetStudy(study.ID)
	require.NoError(t, err)
	assert.Equal(t, "Algorithms", got.Title)
}

func TestGetStudyNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.studyService.GetStudy(404)
	assert.Equal(t, apiError.ErrNotFound, err)
}

func TestApplyNotifiesLeader(t *testing.T) {
	f := newFixture(t)

	application, err := f.studyService.Apply(studyID, outsiderID, &models.ApplyRequest{Content: "let me in"})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationSubmitted, application.Status)

	notifications := f.store.notificationsOf(studyID)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.AudienceLeaderOnly, notifications[0].AudienceType)
	assert.Equal(t, uint(1), notifications[0].ActorID)
	require.Len(t, f.dispatcher.dispatched, 1)
}

func TestApplyRefusals(t *testing.T) {
	f := newFixture(t)
	req := &models.ApplyRequest{Content: "hi"}

	_, err := f.studyService.Apply(404, outsiderID, req)
	assert.Equal(t, apiError.ErrInvalidRequest, err)

	_, err = f.studyService.Apply(studyID, aliceID, req)
	assert.Equal(t, apiError.ErrInvalidRequest, err, "joined member")

	_, err = f.studyService.Apply(studyID, formerID, req)
	assert.Equal(t, apiError.ErrInvalidRequest, err, "member who left")

	_, err = f.studyService.Apply(studyID, outsiderID, req)
	require.NoError(t, err)
	_, err = f.studyService.Apply(studyID, outsiderID, req)
	assert.Equal(t, apiError.ErrInvalidRequest, err, "pending application")
}

func TestAcceptApplication(t *testing.T) {
	f := newFixture(t)
	application, err := f.studyService.Apply(studyID, outsiderID, &models.ApplyRequest{Content: "hi"})
	require.NoError(t, err)

	err = f.studyService.AcceptApplication(studyID, application.ID, leaderID)
	require.NoError(t, err)

	member := f.store.member(studyID, outsiderID)
	require.NotNil(t, member)
	assert.Equal(t, models.StudyRoleMember, member.Role)
	assert.Equal(t, models.StudyMemberJoined, member.Status)
	assert.Equal(t, models.ApplicationAccepted, f.store.applications[application.ID].Status)

	items, err := f.notificationService.GetNotifications(studyID, outsiderID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "outsider has joined!", items[0].Title)

	err = f.studyService.AcceptApplication(studyID, application.ID, leaderID)
	assert.Equal(t, apiError.ErrInvalidParameter, err, "already accepted")
}

func TestRejectApplication(t *testing.T) {
	f := newFixture(t)
	application, err := f.studyService.Apply(studyID, outsiderID, &models.ApplyRequest{Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, f.studyService.RejectApplication(studyID, application.ID, leaderID))
	assert.Equal(t, models.ApplicationRejected, f.store.applications[application.ID].Status)
	assert.Nil(t, f.store.member(studyID, outsiderID))

	_, err = f.studyService.Apply(studyID, outsiderID, &models.ApplyRequest{Content: "again"})
	assert.NoError(t, err)
}

func TestApplicationDecisionValidation(t *testing.T) {
	f := newFixture(t)
	application, err := f.studyService.Apply(studyID, outsiderID, &models.ApplyRequest{Content: "hi"})
	require.NoError(t, err)

	assert.Equal(t, apiError.ErrURLForbidden, f.studyService.AcceptApplication(studyID, application.ID, aliceID))
	assert.Equal(t, apiError.ErrURLForbidden, f.studyService.RejectApplication(studyID, application.ID, outsiderID))
	assert.Equal(t, apiError.ErrInvalidParameter, f.studyService.AcceptApplication(studyID, 9999, leaderID))

	other := f.store.addStudy(2, "Rust study")
	f.store.addMember(20, other.ID, aliceID, models.StudyRoleLeader, models.StudyMemberJoined)
	assert.Equal(t, apiError.ErrInvalidParameter, f.studyService.AcceptApplication(other.ID, application.ID, aliceID))
}

func TestPostAssignment(t *testing.T) {
	f := newFixture(t)
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	assignment, err := f.boardService.PostAssignment(studyID, leaderID, &models.CreateAssignmentRequest{
		Title:       "Chapter 3",
		Description: "exercises 1-5",
		DueAt:       &due,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), assignment.AuthorID)
	require.Len(t, f.store.assignments, 1)

	notifications := f.store.notificationsOf(studyID)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Chapter 3 assignment posted.", notifications[0].Title)
	require.Len(t, f.dispatcher.dispatched, 1)
}

func TestPostAnnouncement(t *testing.T) {
	f := newFixture(t)

	announcement, err := f.boardService.PostAnnouncement(studyID, leaderID, &models.CreateAnnouncementRequest{Title: "No meeting"})
	require.NoError(t, err)
	assert.Equal(t, "No meeting", announcement.Title)
	require.Len(t, f.store.announcements, 1)
	assert.Equal(t, "No meeting announcement posted", f.store.notificationsOf(studyID)[0].Title)
}

func TestPostRequiresLeader(t *testing.T) {
	f := newFixture(t)

	_, err := f.boardService.PostAssignment(studyID, aliceID, &models.CreateAssignmentRequest{Title: "x"})
	assert.Equal(t, apiError.ErrURLForbidden, err)

	_, err = f.boardService.PostAnnouncement(studyID, outsiderID, &models.CreateAnnouncementRequest{Title: "x"})
	assert.Equal(t, apiError.ErrURLForbidden, err)

	assert.Empty(t, f.store.assignments)
	assert.Empty(t, f.store.announcements)
	assert.Empty(t, f.dispatcher.dispatched)
}
