package service

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskflowapp/taskflow-backend/internal/model"
	"github.com/taskflowapp/taskflow-backend/internal/store"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{Name: name, Email: email, PasswordHash: "x"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func createTask(t *testing.T, db *gorm.DB, ownerID, title string) *model.Task {
	t.Helper()
	task := &model.Task{
		Title:    title,
		Priority: model.PriorityMedium,
		Status:   model.StatusPending,
		UserID:   ownerID,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create task %s: %v", title, err)
	}
	return task
}

func createTag(t *testing.T, db *gorm.DB, ownerID, name string) *model.Tag {
	t.Helper()
	tag := &model.Tag{Name: name, Color: "#3B82F6", UserID: ownerID}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create tag %s: %v", name, err)
	}
	return tag
}

func createCategory(t *testing.T, db *gorm.DB, ownerID, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, Color: "#10B981", UserID: ownerID}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category %s: %v", name, err)
	}
	return category
}

func addCollaborator(t *testing.T, db *gorm.DB, taskID, userID, role string) *model.TaskCollaborator {
	t.Helper()
	collab := &model.TaskCollaborator{TaskID: taskID, UserID: userID, Role: role}
	if err := db.Create(collab).Error; err != nil {
		t.Fatalf("failed to create collaborator: %v", err)
	}
	return collab
}
