package models

import "time"

// Assignment is a task posted to the study's assignment board.
type Assignment struct {
	Model
	StudyID     uint        `json:"study_id" gorm:"not null;index"`
	AuthorID    uint        `json:"author_id" gorm:"not null"`
	Author      StudyMember `json:"-" gorm:"foreignKey:AuthorID"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	DueAt       *time.Time  `json:"due_at"`
}

// Announcement is a post on the study's notice board.
type Announcement struct {
	Model
	StudyID     uint        `json:"study_id" gorm:"not null;index"`
	AuthorID    uint        `json:"author_id" gorm:"not null"`
	Author      StudyMember `json:"-" gorm:"foreignKey:AuthorID"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
}

type CreateAssignmentRequest struct {
	Title       string     `json:"title" binding:"required,max=200" conform:"trim"`
	Description string     `json:"description" binding:"max=5000" conform:"trim"`
	DueAt       *time.Time `json:"due_at"`
}

type CreateAnnouncementRequest struct {
	Title       string `json:"title" binding:"required,max=200" conform:"trim"`
	Description string `json:"description" binding:"max=5000" conform:"trim"`
}
