package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskTag links a tag to a task from one viewer's perspective. The
// UserID column is what keeps collaborators' tag sets independent:
// two users on the same task own disjoint rows.
type TaskTag struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	TaskID    string    `json:"task_id" gorm:"size:36;not null;uniqueIndex:idx_task_tags_view;index:idx_task_tags_viewer"`
	TagID     string    `json:"tag_id" gorm:"size:36;not null;uniqueIndex:idx_task_tags_view"`
	UserID    string    `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_task_tags_view;index:idx_task_tags_viewer"`
	Tag       *Tag      `json:"tag,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (tt *TaskTag) BeforeCreate(tx *gorm.DB) error {
	if tt.ID == "" {
		tt.ID = uuid.NewString()
	}
	return nil
}

// TaskCategory is the single-valued counterpart of TaskTag: at most
// one row per (task, viewer), enforced by the unique index.
type TaskCategory struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	TaskID     string    `json:"task_id" gorm:"size:36;not null;uniqueIndex:idx_task_categories_view"`
	CategoryID string    `json:"category_id" gorm:"size:36;not null"`
	UserID     string    `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_task_categories_view"`
	Category   *Category `json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (tc *TaskCategory) BeforeCreate(tx *gorm.DB) error {
	if tc.ID == "" {
		tc.ID = uuid.NewString()
	}
	return nil
}

// Personalization is one user's overlay on one task.
type Personalization struct {
	TagIDs         []string       `json:"tagIds"`
	CategoryID     *string        `json:"categoryId"`
	TaskTags       []TaskTag      `json:"taskTags"`
	TaskCategories []TaskCategory `json:"taskCategories"`
}
