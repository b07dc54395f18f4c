package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"

	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

type Task struct {
	ID          string     `json:"id" gorm:"primaryKey;size:36"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority" gorm:"default:MEDIUM"`
	Status      string     `json:"status" gorm:"default:PENDING;index"`
	UserID      string     `json:"user_id" gorm:"size:36;index;not null"`
	User        *User      `json:"user,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Personalization rows; queries always scope these to one viewer.
	TaskTags       []TaskTag          `json:"task_tags"`
	TaskCategories []TaskCategory     `json:"task_categories"`
	Collaborators  []TaskCollaborator `json:"collaborators,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// SharedTask is a collaboration-view item: a task plus the role the
// requesting user holds on it.
type SharedTask struct {
	Task
	CurrentUserRole string `json:"currentUserRole"`
}
