package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/taskflowapp/taskflow-backend/internal/model"
)

// CategoryService mirrors TagService for categories.
type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{DB: db}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]model.CategoryStats, error) {
	var categories []model.Category
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&categories).Error; err != nil {
		return nil, err
	}

	out := make([]model.CategoryStats, 0, len(categories))
	for _, category := range categories {
		stats := model.CategoryStats{
			ID:        category.ID,
			Name:      category.Name,
			Color:     category.Color,
			CreatedAt: category.CreatedAt.Format("2006-01-02"),
		}

		assignments := s.DB.WithContext(ctx).Model(&model.TaskCategory{}).
			Joins("JOIN tasks ON tasks.id = task_categories.task_id").
			Where("task_categories.category_id = ? AND task_categories.user_id = ?", category.ID, userID).
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

func (s *CategoryService) Get(ctx context.Context, categoryID, userID string) (*model.Category, error) {
	var category model.Category
	err := s.DB.WithContext(ctx).First(&category, "id = ? AND user_id = ?", categoryID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, userID, name, color string) (*model.Category, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.Category{}).
		Where("name = ? AND user_id = ?", name, userID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	category := model.Category{Name: name, Color: color, UserID: userID}
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, categoryID, userID, name, color string) (*model.Category, error) {
	category, err := s.Get(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&model.Category{}).
		Where("name = ? AND user_id = ? AND id <> ?", name, userID, categoryID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrConflict
	}

	category.Name = name
	category.Color = color
	if err := s.DB.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, categoryID, userID string) error {
	category, err := s.Get(ctx, categoryID, userID)
	if err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&model.TaskCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Category{}, "id = ?", category.ID).Error
	})
}
