package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleOwner  = "OWNER"
	RoleEditor = "EDITOR"
	RoleViewer = "VIEWER"
	RoleNone   = "NONE"
)

// ValidCollaboratorRole reports whether role can be stored on a
// collaborator row. OWNER is never stored; the owner is implicit.
func ValidCollaboratorRole(role string) bool {
	return role == RoleEditor || role == RoleViewer
}

type TaskCollaborator struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	TaskID    string    `json:"task_id" gorm:"size:36;not null;uniqueIndex:idx_collaborators_task_user"`
	UserID    string    `json:"user_id" gorm:"size:36;not null;uniqueIndex:idx_collaborators_task_user"`
	Role      string    `json:"role" gorm:"not null;default:EDITOR"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (tc *TaskCollaborator) BeforeCreate(tx *gorm.DB) error {
	if tc.ID == "" {
		tc.ID = uuid.NewString()
	}
	return nil
}

// Member is one entry of a task's member listing. The owner has no
// stored collaborator row, so listings synthesize one with an
// "owner-" prefixed id.
type Member struct {
	ID     string       `json:"id"`
	TaskID string       `json:"task_id"`
	UserID string       `json:"user_id"`
	Role   string       `json:"role"`
	User   UserResponse `json:"user"`
}

// InviteResult reports what an invite actually did: rows created,
// plus how many emails were skipped (unknown, the owner, or already
// a member).
type InviteResult struct {
	Created []TaskCollaborator `json:"created"`
	Skipped int                `json:"skipped"`
}
