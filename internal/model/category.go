package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"not null;uniqueIndex:idx_categories_owner_name"`
	Color     string    `json:"color"`
	UserID    string    `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_categories_owner_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type CategoryStats struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Color          string `json:"color"`
	CreatedAt      string `json:"createdAt"`
	TaskCount      int64  `json:"taskCount"`
	CompletedTasks int64  `json:"completedTasks"`
	PendingTasks   int64  `json:"pendingTasks"`
}
