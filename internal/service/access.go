package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/taskflowapp/taskflow-backend/internal/model"
)

// AccessResolver answers "what may this user do with this task".
// Every task-touching operation consults it before reading or
// writing anything.
type AccessResolver struct {
	DB *gorm.DB
}

func NewAccessResolver(db *gorm.DB) *AccessResolver {
	return &AccessResolver{DB: db}
}

// Resolve returns the effective role of userID on taskID: OWNER when
// the task's owner column matches, the stored collaborator role when
// a grant row exists, NONE otherwise. ErrNotFound means the task
// itself does not exist.
func (r *AccessResolver) Resolve(ctx context.Context, taskID, userID string) (string, error) {
	var task model.Task
	err := r.DB.WithContext(ctx).Select("id", "user_id").First(&task, "id = ?", taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RoleNone, ErrNotFound
	}
	if err != nil {
		return model.RoleNone, err
	}

	if task.UserID == userID {
		return model.RoleOwner, nil
	}

	var collab model.TaskCollaborator
	err = r.DB.WithContext(ctx).
		First(&collab, "task_id = ? AND user_id = ?", taskID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RoleNone, nil
	}
	if err != nil {
		return model.RoleNone, err
	}

	return collab.Role, nil
}

// RequireMember is the read-path gate: any role passes, no access is
// reported as ErrNotFound so non-members cannot tell a hidden task
// from a missing one.
func (r *AccessResolver) RequireMember(ctx context.Context, taskID, userID string) (string, error) {
	role, err := r.Resolve(ctx, taskID, userID)
	if err != nil {
		return model.RoleNone, err
	}
	if role == model.RoleNone {
		return model.RoleNone, ErrNotFound
	}
	return role, nil
}

// RequireOwner is the write-path gate for owner-only operations. A
// non-owner member gets ErrForbidden; a stranger gets ErrNotFound,
// same as a missing task, so existence stays hidden from outsiders.
func (r *AccessResolver) RequireOwner(ctx context.Context, taskID, userID string) error {
	role, err := r.Resolve(ctx, taskID, userID)
	if err != nil {
		return err
	}
	switch role {
	case model.RoleOwner:
		return nil
	case model.RoleNone:
		return ErrNotFound
	default:
		return ErrForbidden
	}
}
