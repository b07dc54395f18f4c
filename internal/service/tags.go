package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/taskflowapp/taskflow-backend/internal/model"
)

// TagService is owner-scoped CRUD for tags. Tags are never shared:
// every operation is keyed by (id, owner).
type TagService struct {
	DB *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{DB: db}
}

// List returns the user's tags with usage counters computed from the
// user's own task assignments.
func (s *TagService) List(ctx context.Context, userID string) ([]model.TagStats, error) {
	var tags []model.Tag
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&tags).Error; err != nil {
		return nil, err
	}

	out := make([]model.TagStats, 0, len(tags))
	for _, tag := range tags {
		stats := model.TagStats{
			ID:        tag.ID,
			Name:      tag.Name,
			Color:     tag.Color,
			CreatedAt: tag.CreatedAt.Format("2006-01-02"),
		}

		assignments := s.DB.WithContext(ctx).Model(&model.TaskTag{}).
			Joins("JOIN tasks ON tasks.id = task_tags.task_id").
			Where("task_tags.tag_id = ? AND task_tags.user_id = ?", tag.ID, userID).
			Session(&gorm.Session{})
		if err := assignments.Count(&stats.TaskCount).Error; err != nil {
			return nil, err
		}
		if err := assignments.
			Where("tasks.status = ?", model.StatusCompleted).
			Count(&stats.CompletedTasks).Error; err != nil {
			return nil, err
		}
		if err := assignments.
			Where("tasks.status = ?", model.StatusPending).
			Count(&stats.PendingTasks).Error; err != nil {
			return nil, err
		}

		out = append(out, stats)
	}
	return out, nil
}

func (s *TagService) Get(ctx context.Context, tagID, userID string) (*model.Tag, error) {
	var tag model.Tag
	err := s.DB.WithContext(ctx).First(&tag, "id = ? AND user_id = ?", tagID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Create rejects a duplicate name under the same owner.
func (s *TagService) Create(ctx context.Context, userID, name, color string) (*model.Tag, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.Tag{}).
		Where("name = ? AND user_id = ?", name, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	tag := model.Tag{Name: name, Color: color, UserID: userID}
	if err := s.DB.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) Update(ctx context.Context, tagID, userID, name, color string) (*model.Tag, error) {
	tag, err := s.Get(ctx, tagID, userID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.Tag{}).
		Where("name = ? AND user_id = ? AND id <> ?", name, userID, tagID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	tag.Name = name
	tag.Color = color
	if err := s.DB.WithContext(ctx).Save(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete removes the tag and every assignment of it, atomically.
func (s *TagService) Delete(ctx context.Context, tagID, userID string) error {
	tag, err := s.Get(ctx, tagID, userID)
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&model.TaskTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, "id = ?", tag.ID).Error
	})
}
