package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/taskflowapp/taskflow-backend/internal/model"
)

// Columns a caller may sort the task listing by, keyed by the JSON
// field names the API accepts.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"dueDate":   "due_date",
	"title":     "title",
	"priority":  "priority",
	"status":    "status",
}

type TaskService struct {
	DB          *gorm.DB
	Access      *AccessResolver
	Personalize *PersonalizeService
	PageSize    int
}

func NewTaskService(db *gorm.DB, access *AccessResolver, personalize *PersonalizeService, pageSize int) *TaskService {
	return &TaskService{DB: db, Access: access, Personalize: personalize, PageSize: pageSize}
}

// List returns the caller's own tasks, filtered, sorted and
// paginated. Returned tasks carry only the caller's personalization
// rows.
func (s *TaskService) List(ctx context.Context, userID string, f model.TaskFilter) (*model.TaskPage, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = s.PageSize
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	q := s.DB.WithContext(ctx).Model(&model.Task{}).Where("tasks.user_id = ?", userID)
	q, err := s.applyFilters(ctx, q, userID, f)
	if err != nil {
		return nil, err
	}

	// Count on a detached session so the aggregate does not leak
	// into the page query below.
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(f.SortOrder, "asc") {
		direction = "ASC"
	}

	var tasks []model.Task
	err = q.
		Order(column + " " + direction).
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("TaskTags", "user_id = ?", userID).
		Preload("TaskTags.Tag").
		Preload("TaskCategories", "user_id = ?", userID).
		Preload("TaskCategories.Category").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &model.TaskPage{Items: tasks, Total: total, Page: page, TotalPages: totalPages}, nil
}

func (s *TaskService) applyFilters(ctx context.Context, q *gorm.DB, userID string, f model.TaskFilter) (*gorm.DB, error) {
	if f.Status != "" && f.Status != "all" {
		q = q.Where("tasks.status = ?", f.Status)
	}
	if f.Priority != "" && f.Priority != "all" {
		q = q.Where("tasks.priority = ?", f.Priority)
	}
	if f.CategoryID != "" && f.CategoryID != "all" {
		// Matched against the caller's own assignment, not a column
		// on the task itself.
		q = q.Where("tasks.id IN (?)", s.DB.Model(&model.TaskCategory{}).
			Select("task_id").
			Where("category_id = ? AND user_id = ?", f.CategoryID, userID))
	}
	if len(f.TagNames) > 0 {
		q = q.Where("tasks.id IN (?)", s.DB.Model(&model.TaskTag{}).
			Select("task_tags.task_id").
			Joins("JOIN tags ON tags.id = task_tags.tag_id").
			Where("task_tags.user_id = ? AND tags.name IN ?", userID, f.TagNames))
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(tasks.title) LIKE ? OR LOWER(tasks.description) LIKE ?", pattern, pattern)
	}
	if f.FromDate != nil {
		from, err := parseDate(*f.FromDate)
		if err != nil {
			return nil, ErrValidation
		}
		q = q.Where("tasks.due_date >= ?", from)
	}
	if f.ToDate != nil {
		to, err := parseDate(*f.ToDate)
		if err != nil {
			return nil, ErrValidation
		}
		q = q.Where("tasks.due_date <= ?", to)
	}
	return q, nil
}

// ListShared returns the collaboration view: tasks the caller
// participates in as a collaborator, plus tasks the caller owns that
// have at least one collaborator. Privately owned tasks stay out.
func (s *TaskService) ListShared(ctx context.Context, userID string) ([]model.SharedTask, error) {
	memberOf := s.DB.Model(&model.TaskCollaborator{}).
		Select("task_id").
		Where("user_id = ?", userID)
	anyCollab := s.DB.Model(&model.TaskCollaborator{}).Select("task_id")

	var tasks []model.Task
	err := s.DB.WithContext(ctx).
		Where(
			s.DB.Where("tasks.id IN (?)", memberOf).
				Or("tasks.user_id = ? AND tasks.id IN (?)", userID, anyCollab),
		).
		Preload("User").
		Preload("TaskTags", "user_id = ?", userID).
		Preload("TaskTags.Tag").
		Preload("TaskCategories", "user_id = ?", userID).
		Preload("TaskCategories.Category").
		Preload("Collaborators").
		Preload("Collaborators.User").
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	out := make([]model.SharedTask, 0, len(tasks))
	for _, task := range tasks {
		role := model.RoleViewer
		if task.UserID == userID {
			role = model.RoleOwner
		} else {
			for _, c := range task.Collaborators {
				if c.UserID == userID {
					role = c.Role
					break
				}
			}
		}
		out = append(out, model.SharedTask{Task: task, CurrentUserRole: role})
	}
	return out, nil
}

// Get returns one task with the caller's overlay. Any role may read.
func (s *TaskService) Get(ctx context.Context, taskID, userID string) (*model.Task, error) {
	if _, err := s.Access.RequireMember(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.fetch(ctx, taskID, userID)
}

// Create stores a new task owned by userID. Optional categoryId and
// tagIds seed the creator's own personalization; ids the creator does
// not own are dropped the same way the personalize path drops them.
func (s *TaskService) Create(ctx context.Context, userID string, req model.CreateTaskRequest) (*model.Task, error) {
	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, ErrValidation
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return nil, ErrValidation
	}

	validTagIDs, err := s.Personalize.ownedTagIDs(ctx, userID, req.TagIDs)
	if err != nil {
		return nil, err
	}
	validCategoryID, err := s.Personalize.ownedCategoryID(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	task := model.Task{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Priority:    priority,
		Status:      model.StatusPending,
		UserID:      userID,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		for _, tagID := range validTagIDs {
			if err := tx.Create(&model.TaskTag{TaskID: task.ID, TagID: tagID, UserID: userID}).Error; err != nil {
				return err
			}
		}
		if validCategoryID != "" {
			if err := tx.Create(&model.TaskCategory{TaskID: task.ID, CategoryID: validCategoryID, UserID: userID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.fetch(ctx, task.ID, userID)
}

// Update rewrites the task's core fields and relinks the owner's own
// tag/category rows in one transaction. Owner-only: collaborator
// roles never extend to the task's fields.
func (s *TaskService) Update(ctx context.Context, taskID, userID string, req model.UpdateTaskRequest) (*model.Task, error) {
	if err := s.Access.RequireOwner(ctx, taskID, userID); err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, ErrValidation
	}
	status := req.Status
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return nil, ErrValidation
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		return nil, ErrValidation
	}

	validTagIDs, err := s.Personalize.ownedTagIDs(ctx, userID, req.TagIDs)
	if err != nil {
		return nil, err
	}
	validCategoryID, err := s.Personalize.ownedCategoryID(ctx, userID, req.CategoryID)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":       req.Title,
			"description": req.Description,
			"due_date":    dueDate,
			"priority":    priority,
			"status":      status,
		}
		if err := tx.Model(&model.Task{}).Where("id = ?", taskID).Updates(updates).Error; err != nil {
			return err
		}

		// Relink only the owner's rows; collaborators' overlays are
		// theirs alone.
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

	return s.fetch(ctx, taskID, userID)
}

// Delete removes the task and every dependent row in one
// transaction so no orphaned relations survive.
func (s *TaskService) Delete(ctx context.Context, taskID, userID string) error {
	if err := s.Access.RequireOwner(ctx, taskID, userID); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.TaskTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&model.TaskCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&model.TaskCollaborator{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Task{}, "id = ?", taskID).Error
	})
}

func (s *TaskService) fetch(ctx context.Context, taskID, userID string) (*model.Task, error) {
	var task model.Task
	err := s.DB.WithContext(ctx).
		Preload("TaskTags", "user_id = ?", userID).
		Preload("TaskTags.Tag").
		Preload("TaskCategories", "user_id = ?", userID).
		Preload("TaskCategories.Category").
		First(&task, "id = ?", taskID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	return parseDate(*s)
}

// parseDate accepts RFC3339 or plain YYYY-MM-DD.
func parseDate(s string) (*time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
