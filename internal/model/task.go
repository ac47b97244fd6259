package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a to-do item owned by exactly one user. The owner reference is
// non-cascading; users are never deleted through this API.
type Task struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Task      string    `json:"task" gorm:"size:1024;not null"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
