package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the common primary key and audit columns embedded by every entity.
type Model struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
