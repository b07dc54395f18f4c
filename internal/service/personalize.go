package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/taskflowapp/taskflow-backend/internal/model"
)

// PersonalizeService manages a user's private tag/category overlay on
// a task. Overlays of different users on the same task never touch.
type PersonalizeService struct {
	DB     *gorm.DB
	Access *AccessResolver
}

func NewPersonalizeService(db *gorm.DB, access *AccessResolver) *PersonalizeService {
	return &PersonalizeService{DB: db, Access: access}
}

// Get returns the caller's overlay for the task. Any role may read;
// no access reads as ErrNotFound.
func (s *PersonalizeService) Get(ctx context.Context, taskID, userID string) (*model.Personalization, error) {
	if _, err := s.Access.RequireMember(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.snapshot(s.DB.WithContext(ctx), taskID, userID)
}

// Set replaces the caller's overlay. Tag ids the caller does not own
// are dropped, not rejected; an unowned or sentinel ("none"/empty)
// category clears the assignment. The delete-and-insert pair runs in
// one transaction so readers never see a half-replaced overlay.
func (s *PersonalizeService) Set(ctx context.Context, taskID, userID string, tagIDs []string, categoryID string) (*model.Personalization, error) {
	role, err := s.Access.Resolve(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if role == model.RoleNone {
		return nil, ErrForbidden
	}

	validTagIDs, err := s.ownedTagIDs(ctx, userID, tagIDs)
	if err != nil {
		return nil, err
	}
	validCategoryID, err := s.ownedCategoryID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ? AND user_id = ?", taskID, userID).
			Delete(&model.TaskTag{}).Error; err != nil {
			return err
		}
		for _, tagID := range validTagIDs {
			if err := tx.Create(&model.TaskTag{TaskID: taskID, TagID: tagID, UserID: userID}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("task_id = ? AND user_id = ?", taskID, userID).
			Delete(&model.TaskCategory{}).Error; err != nil {
			return err
		}
		if validCategoryID != "" {
			if err := tx.Create(&model.TaskCategory{TaskID: taskID, CategoryID: validCategoryID, UserID: userID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.snapshot(s.DB.WithContext(ctx), taskID, userID)
}

// ownedTagIDs filters the requested ids down to tags the user owns,
// preserving request order.
func (s *PersonalizeService) ownedTagIDs(ctx context.Context, userID string, tagIDs []string) ([]string, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var owned []string
	err := s.DB.WithContext(ctx).Model(&model.Tag{}).
		Where("id IN ? AND user_id = ?", tagIDs, userID).
		Pluck("id", &owned).Error
	if err != nil {
		return nil, err
	}
	ownedSet := make(map[string]bool, len(owned))
	for _, id := range owned {
		ownedSet[id] = true
	}
	var out []string
	seen := make(map[string]bool, len(tagIDs))
	for _, id := range tagIDs {
		if ownedSet[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

// ownedCategoryID resolves the requested category to one the user
// owns, or "" when it should be cleared.
func (s *PersonalizeService) ownedCategoryID(ctx context.Context, userID, categoryID string) (string, error) {
	if categoryID == "" || categoryID == "none" {
		return "", nil
	}
	var count int64
	err := s.DB.WithContext(ctx).Model(&model.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	if count == 0 {
		return "", nil
	}
	return categoryID, nil
}

func (s *PersonalizeService) snapshot(db *gorm.DB, taskID, userID string) (*model.Personalization, error) {
	var taskTags []model.TaskTag
	if err := db.Preload("Tag").
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Order("created_at").
		Find(&taskTags).Error; err != nil {
		return nil, err
	}

	var taskCategories []model.TaskCategory
	if err := db.Preload("Category").
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Find(&taskCategories).Error; err != nil {
		return nil, err
	}

	p := &model.Personalization{
		TagIDs:         make([]string, 0, len(taskTags)),
		TaskTags:       taskTags,
		TaskCategories: taskCategories,
	}
	for _, tt := range taskTags {
		p.TagIDs = append(p.TagIDs, tt.TagID)
	}
	if len(taskCategories) > 0 {
		p.CategoryID = &taskCategories[0].CategoryID
	}
	return p, nil
}
