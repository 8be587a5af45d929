package models

import "time"

// AudienceType decides who a notification is meant for.
type AudienceType string

const (
	AudienceAllMembers AudienceType = "ALL_MEMBERS"
	AudienceLeaderOnly AudienceType = "LEADER_ONLY"
)

// Notification is an in-app message attached to a study.
type Notification struct {
	Model
	StudyID      uint         `json:"study_id" gorm:"not null;index:idx_notifications_study_created,priority:1"`
	Study        Study        `json:"-" gorm:"foreignKey:StudyID;constraint:OnDelete:CASCADE"`
	ActorID      uint         `json:"actor_id" gorm:"not null"`
	Actor        StudyMember  `json:"-" gorm:"foreignKey:ActorID"`
	AudienceType AudienceType `json:"audience_type" gorm:"type:varchar(20);not null"`
	Title        string       `json:"title" gorm:"not null"`
	Description  string       `json:"description" gorm:"type:text"`
}

type NotificationListItem struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	AudienceType AudienceType `json:"audience_type"`
}

type NotificationDetail struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LiveNotification is the frame pushed over the live websocket stream.
type LiveNotification struct {
	ID           uint         `json:"id"`
	StudyID      uint         `json:"study_id"`
	AudienceType AudienceType `json:"audience_type"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	CreatedAt    time.Time    `json:"created_at"`
}
