package models

import "time"

type Study struct {
	Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
}

// StudyMember links a user to a study. A (study, user) pair has at most one row.
type StudyMember struct {
	Model
	StudyID uint              `json:"study_id" gorm:"not null;uniqueIndex:idx_study_user"`
	Study   Study             `json:"-" gorm:"foreignKey:StudyID;constraint:OnDelete:CASCADE"`
	UserID  uint              `json:"user_id" gorm:"not null;uniqueIndex:idx_study_user"`
	User    User              `json:"-" gorm:"foreignKey:UserID"`
	Role    StudyRole         `json:"role" gorm:"type:varchar(10);not null"`
	Status  StudyMemberStatus `json:"status" gorm:"type:varchar(10);not null;index"`
}

// UpdateStatus applies a soft delete; anything but a JOINED member is left untouched.
func (m *StudyMember) UpdateStatus(status StudyMemberStatus) bool {
	if m.Status != StudyMemberJoined || status == StudyMemberJoined {
		return false
	}
	m.Status = status
	return true
}

type Application struct {
	Model
	StudyID uint              `json:"study_id" gorm:"not null;index"`
	Study   Study             `json:"-" gorm:"foreignKey:StudyID;constraint:OnDelete:CASCADE"`
	UserID  uint              `json:"user_id" gorm:"not null;index"`
	Content string            `json:"content" gorm:"type:text"`
	Status  ApplicationStatus `json:"status" gorm:"type:varchar(10);not null"`
}

type CreateStudyRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=100" conform:"trim"`
	Description string `json:"description" binding:"max=2000" conform:"trim"`
}

type ApplyRequest struct {
	Content string `json:"content" binding:"required,max=2000" conform:"trim"`
}

type StudyMemberDto struct {
	UserID          uint       `json:"user_id"`
	Nickname        string     `json:"nickname"`
	ProfileImageURL string     `json:"profile_image_url"`
	Role            string     `json:"role"`
	LastLoginAt     *time.Time `json:"last_login_at"`
}

type GetStudyMembersResponse struct {
	StudyID uint             `json:"study_id"`
	Members []StudyMemberDto `json:"members"`
}
