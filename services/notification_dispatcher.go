package services

import (
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/techagentng/studyfocus/db"
	"github.com/techagentng/studyfocus/mailingservices"
	"github.com/techagentng/studyfocus/models"
	"github.com/techagentng/studyfocus/push"
)

// NotificationDispatcher delivers persisted notifications outside the database.
type NotificationDispatcher interface {
	Dispatch(notification *models.Notification)
	// Revoke closes the live streams a user holds on a study.
	Revoke(studyID, userID uint)
	// Wait blocks until background push and mail deliveries are done.
	Wait()
}

// LiveBroadcaster is satisfied by live.Hub.
type LiveBroadcaster interface {
	Publish(n models.LiveNotification)
	Drop(studyID, userID uint)
}

type deliveryDispatcher struct {
	memberRepo db.StudyMemberRepository
	publisher  push.Publisher
	mailer     mailingservices.Mailer
	live       LiveBroadcaster

	wg sync.WaitGroup
}

// NewNotificationDispatcher wires the delivery channels; any of publisher, mailer and live may be nil.
func NewNotificationDispatcher(memberRepo db.StudyMemberRepository, publisher push.Publisher, mailer mailingservices.Mailer, live LiveBroadcaster) NotificationDispatcher {
	return &deliveryDispatcher{
		memberRepo: memberRepo,
		publisher:  publisher,
		mailer:     mailer,
		live:       live,
	}
}

// Dispatch never fails the caller. Live delivery happens inline, push and mail in the background;
// problems are only logged.
func (d *deliveryDispatcher) Dispatch(notification *models.Notification) {
	n := *notification
	logger := log.WithFields(log.Fields{
		"notification_id": n.ID,
		"study_id":        n.StudyID,
		"audience":        n.AudienceType,
	})

	if d.live != nil {
		d.live.Publish(models.LiveNotification{
			ID:           n.ID,
			StudyID:      n.StudyID,
			AudienceType: n.AudienceType,
			Title:        n.Title,
			Description:  n.Description,
			CreatedAt:    n.CreatedAt,
		})
	}

	switch n.AudienceType {
	case models.AudienceAllMembers:
		if d.publisher == nil {
			return
		}
		data := map[string]string{
			"notification_id": strconv.FormatUint(uint64(n.ID), 10),
			"study_id":        strconv.FormatUint(uint64(n.StudyID), 10),
		}
		d.background(func() {
			if err := d.publisher.PublishToStudy(n.StudyID, n.Title, n.Description, data); err != nil {
				logger.WithError(err).Warn("push delivery failed")
			}
		})
	case models.AudienceLeaderOnly:
		if d.mailer == nil {
			return
		}
		d.background(func() {
			leader, err := d.memberRepo.FindByStudyIDAndRole(n.StudyID, models.StudyRoleLeader)
			if err != nil {
				logger.WithError(err).Warn("leader lookup for email delivery failed")
				return
			}
			if err := d.mailer.SendLeaderNotice(leader.User.Email, n.Title, n.Description); err != nil {
				logger.WithError(err).Warn("email delivery failed")
			}
		})
	}
}

func (d *deliveryDispatcher) Revoke(studyID, userID uint) {
	if d.live != nil {
		d.live.Drop(studyID, userID)
	}
}

func (d *deliveryDispatcher) Wait() {
	d.wg.Wait()
}

func (d *deliveryDispatcher) background(fn func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		fn()
	}()
}
