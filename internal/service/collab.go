package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/taskflowapp/taskflow-backend/internal/model"
)

// CollabService manages role grants on a task. Only the task's owner
// may change who is on a task or what they may do.
type CollabService struct {
	DB     *gorm.DB
	Access *AccessResolver
}

func NewCollabService(db *gorm.DB, access *AccessResolver) *CollabService {
	return &CollabService{DB: db, Access: access}
}

// Members lists everyone on the task: a synthesized OWNER entry for
// the task's creator followed by the stored collaborator rows. Any
// member may look.
func (s *CollabService) Members(ctx context.Context, taskID, userID string) ([]model.Member, error) {
	if _, err := s.Access.RequireMember(ctx, taskID, userID); err != nil {
		return nil, err
	}

	var task model.Task
	err := s.DB.WithContext(ctx).
		Preload("User").
		Preload("Collaborators").
		Preload("Collaborators.User").
		First(&task, "id = ?", taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	members := make([]model.Member, 0, len(task.Collaborators)+1)
	if task.User != nil {
		// The owner never has a stored row; synthesize one so the
		// listing has a single shape.
		members = append(members, model.Member{
			ID:     "owner-" + task.User.ID,
			TaskID: task.ID,
			UserID: task.User.ID,
			Role:   model.RoleOwner,
			User:   task.User.ToResponse(),
		})
	}
	for _, c := range task.Collaborators {
		m := model.Member{
			ID:     c.ID,
			TaskID: c.TaskID,
			UserID: c.UserID,
			Role:   c.Role,
		}
		if c.User != nil {
			m.User = c.User.ToResponse()
		}
		members = append(members, m)
	}
	return members, nil
}

// Add invites users by email with the given role (EDITOR when
// unspecified). Unknown emails, the owner's own email and already
// invited users are skipped, so repeating an invite is a no-op for
// the people it already covered.
func (s *CollabService) Add(ctx context.Context, taskID, actingUserID string, emails []string, role string) (*model.InviteResult, error) {
	if err := s.Access.RequireOwner(ctx, taskID, actingUserID); err != nil {
		return nil, err
	}

	if role == "" {
		role = model.RoleEditor
	}
	if !model.ValidCollaboratorRole(role) {
		return nil, ErrValidation
	}

	var users []model.User
	if len(emails) > 0 {
		if err := s.DB.WithContext(ctx).Where("email IN ?", emails).Find(&users).Error; err != nil {
			return nil, err
		}
	}

	result := &model.InviteResult{Created: []model.TaskCollaborator{}}
	result.Skipped = len(emails) - len(users)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			if u.ID == actingUserID {
				result.Skipped++
				continue
			}
			var existing int64
			if err := tx.Model(&model.TaskCollaborator{}).
				Where("task_id = ? AND user_id = ?", taskID, u.ID).
				Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				result.Skipped++
				continue
			}
			row := model.TaskCollaborator{TaskID: taskID, UserID: u.ID, Role: role}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			result.Created = append(result.Created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ChangeRole updates the stored role of the collaborator identified
// by email.
func (s *CollabService) ChangeRole(ctx context.Context, taskID, actingUserID, email, role string) (*model.TaskCollaborator, error) {
	if err := s.Access.RequireOwner(ctx, taskID, actingUserID); err != nil {
		return nil, err
	}
	if !model.ValidCollaboratorRole(role) {
		return nil, ErrValidation
	}

	target, err := s.userByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	var collab model.TaskCollaborator
	err = s.DB.WithContext(ctx).
		First(&collab, "task_id = ? AND user_id = ?", taskID, target.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	collab.Role = role
	if err := s.DB.WithContext(ctx).Save(&collab).Error; err != nil {
		return nil, err
	}
	return &collab, nil
}

// Remove revokes a collaborator's grant. The removed user's
// personalization rows for the task go with it, in the same
// transaction, so revocation leaves nothing behind.
func (s *CollabService) Remove(ctx context.Context, taskID, actingUserID, email string) error {
	if err := s.Access.RequireOwner(ctx, taskID, actingUserID); err != nil {
		return err
	}

	target, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}

	var collab model.TaskCollaborator
	err = s.DB.WithContext(ctx).
		First(&collab, "task_id = ? AND user_id = ?", taskID, target.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ? AND user_id = ?", taskID, target.ID).
			Delete(&model.TaskTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ? AND user_id = ?", taskID, target.ID).
			Delete(&model.TaskCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.TaskCollaborator{}, "id = ?", collab.ID).Error
	})
}

func (s *CollabService) userByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.DB.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
