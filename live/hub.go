package live

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/techagentng/studyfocus/models"
)

const subscriberBuffer = 16

// Subscriber receives the notifications of one study on C until it is unsubscribed.
type Subscriber struct {
	StudyID uint
	UserID  uint
	Leader  bool
	C       chan models.LiveNotification
}

// Hub fans persisted notifications out to connected members of a study.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint]map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe(studyID, userID uint, leader bool) *Subscriber {
	s := &Subscriber{
		StudyID: studyID,
		UserID:  userID,
		Leader:  leader,
		C:       make(chan models.LiveNotification, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[studyID] == nil {
		h.subs[studyID] = make(map[*Subscriber]struct{})
	}
	h.subs[studyID][s] = struct{}{}
	return s
}

// Unsubscribe removes s and closes its channel. Calling it twice is harmless.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[s.StudyID]
	if !ok {
		return
	}
	if _, ok := set[s]; !ok {
		return
	}
	delete(set, s)
	close(s.C)
	if len(set) == 0 {
		delete(h.subs, s.StudyID)
	}
}

// Drop unsubscribes every stream userID holds on the study and closes their channels.
func (h *Hub) Drop(studyID, userID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.subs[studyID]
	for s := range set {
		if s.UserID != userID {
			continue
		}
		delete(set, s)
		close(s.C)
	}
	if set != nil && len(set) == 0 {
		delete(h.subs, studyID)
	}
}

// Publish never blocks: a subscriber whose buffer is full misses the message.
func (h *Hub) Publish(n models.LiveNotification) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs[n.StudyID] {
		if n.AudienceType == models.AudienceLeaderOnly && !s.Leader {
			continue
		}
		select {
		case s.C <- n:
		default:
			log.WithFields(log.Fields{"study_id": n.StudyID, "user_id": s.UserID}).Warn("live subscriber is lagging, dropping notification")
		}
	}
}

func (h *Hub) Count(studyID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[studyID])
}
