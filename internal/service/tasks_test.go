package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/taskflowapp/taskflow-backend/internal/model"
)

func testTaskService(db *gorm.DB) *TaskService {
	access := NewAccessResolver(db)
	personalize := NewPersonalizeService(db, access)
	return NewTaskService(db, access, personalize, 1000)
}

func TestTaskList_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	owner := createUser(t, db, "Alice", "alice@example.com")
	other := createUser(t, db, "Bob", "bob@example.com")

	done := createTask(t, db, owner.ID, "done one")
	require.NoError(t, db.Model(done).Update("status", model.StatusCompleted).Error)
	createTask(t, db, owner.ID, "pending one")
	otherDone := createTask(t, db, other.ID, "not mine")
	require.NoError(t, db.Model(otherDone).Update("status", model.StatusCompleted).Error)

	page, err := svc.List(context.Background(), owner.ID, model.TaskFilter{Status: model.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, done.ID, page.Items[0].ID)
	assert.EqualValues(t, 1, page.Total)
}

func TestTaskList_SearchCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	owner := createUser(t, db, "Alice", "alice@example.com")
	hit := createTask(t, db, owner.ID, "Ship RELEASE candidate")
	desc := &model.Task{Title: "other", Description: "the big release notes", UserID: owner.ID,
		Priority: model.PriorityLow, Status: model.StatusPending}
	require.NoError(t, db.Create(desc).Error)
	createTask(t, db, owner.ID, "unrelated")

	page, err := svc.List(context.Background(), owner.ID, model.TaskFilter{Search: "release"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	ids := []string{page.Items[0].ID, page.Items[1].ID}
	assert.Contains(t, ids, hit.ID)
	assert.Contains(t, ids, desc.ID)
}

func TestTaskList_CategoryFilterUsesCallerAssignment(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	owner := createUser(t, db, "Alice", "alice@example.com")
	work := createCategory(t, db, owner.ID, "Work")

	inCategory := createTask(t, db, owner.ID, "categorized")
	createTask(t, db, owner.ID, "uncategorized")
	_, err := svc.Personalize.Set(context.Background(), inCategory.ID, owner.ID, nil, work.ID)
	require.NoError(t, err)

	page, err := svc.List(context.Background(), owner.ID, model.TaskFilter{CategoryID: work.ID})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, inCategory.ID, page.Items[0].ID)
}

func TestTaskList_TagNameFilterIsViewerScoped(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	alice := createUser(t, db, "Alice", "alice@example.com")
	bob := createUser(t, db, "Bob", "bob@example.com")

	// Both users own a tag named "urgent"; each tags their own task.
	aliceUrgent := createTag(t, db, alice.ID, "urgent")
	bobUrgent := createTag(t, db, bob.ID, "urgent")

	aliceTask := createTask(t, db, alice.ID, "alice task")
	bobTask := createTask(t, db, bob.ID, "bob task")
	_, err := svc.Personalize.Set(context.Background(), aliceTask.ID, alice.ID, []string{aliceUrgent.ID}, "")
	require.NoError(t, err)
	_, err = svc.Personalize.Set(context.Background(), bobTask.ID, bob.ID, []string{bobUrgent.ID}, "")
	require.NoError(t, err)

	page, err := svc.List(context.Background(), alice.ID, model.TaskFilter{TagNames: []string{"urgent"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, aliceTask.ID, page.Items[0].ID)

	// The returned task carries only the caller's tag rows.
	require.Len(t, page.Items[0].TaskTags, 1)
	assert.Equal(t, aliceUrgent.ID, page.Items[0].TaskTags[0].TagID)
}

func TestTaskList_DueDateRange(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	owner := createUser(t, db, "Alice", "alice@example.com")
	mkDue := func(title string, due time.Time) *model.Task {
		task := &model.Task{Title: title, DueDate: &due, UserID: owner.ID,
			Priority: model.PriorityMedium, Status: model.StatusPending}
		require.NoError(t, db.Create(task).Error)
		return task
	}
	early := mkDue("early", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	mid := mkDue("mid", time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	mkDue("late", time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))

	from, to := "2026-01-01", "2026-02-28"
	page, err := svc.List(context.Background(), owner.ID, model.TaskFilter{FromDate: &from, ToDate: &to})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	ids := []string{page.Items[0].ID, page.Items[1].ID}
	assert.Contains(t, ids, early.ID)
	assert.Contains(t, ids, mid.ID)
}

func TestTaskList_Pagination(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	owner := createUser(t, db, "Alice", "alice@example.com")
	for i := 0; i < 5; i++ {
		task := &model.Task{Title: fmt.Sprintf("task-%d", i), UserID: owner.ID,
			Priority: model.PriorityMedium, Status: model.StatusPending,
			CreatedAt: time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC)}
		require.NoError(t, db.Create(task).Error)
	}

	seen := map[string]bool{}
	var pages int
	for p := 1; ; p++ {
		page, err := svc.List(context.Background(), owner.ID,
			model.TaskFilter{Page: p, Limit: 2, SortBy: "createdAt", SortOrder: "asc"})
		require.NoError(t, err)
		assert.EqualValues(t, 5, page.Total)
		assert.Equal(t, 3, page.TotalPages)
		if len(page.Items) == 0 {
			break
		}
		for _, item := range page.Items {
			assert.False(t, seen[item.ID], "task %s appeared twice", item.Title)
			seen[item.ID] = true
		}
		pages++
		if p >= page.TotalPages {
			break
		}
	}
	assert.Equal(t, 3, pages)
	assert.Len(t, seen, 5)
}

func TestTaskList_DefaultSortNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	owner := createUser(t, db, "Alice", "alice@example.com")
	oldTask := &model.Task{Title: "old", UserID: owner.ID, Priority: model.PriorityMedium,
		Status: model.StatusPending, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	newTask := &model.Task{Title: "new", UserID: owner.ID, Priority: model.PriorityMedium,
		Status: model.StatusPending, CreatedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(oldTask).Error)
	require.NoError(t, db.Create(newTask).Error)

	page, err := svc.List(context.Background(), owner.ID, model.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, newTask.ID, page.Items[0].ID)
	assert.Equal(t, oldTask.ID, page.Items[1].ID)
}

func TestTaskCreate_SeedsOwnerPersonalization(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	owner := createUser(t, db, "Alice", "alice@example.com")
	tag := createTag(t, db, owner.ID, "urgent")
	category := createCategory(t, db, owner.ID, "Work")

	task, err := svc.Create(context.Background(), owner.ID, model.CreateTaskRequest{
		Title:      "Ship release",
		CategoryID: category.ID,
		TagIDs:     []string{tag.ID, "bogus-id"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, task.Status)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	require.Len(t, task.TaskTags, 1)
	assert.Equal(t, tag.ID, task.TaskTags[0].TagID)
	require.Len(t, task.TaskCategories, 1)
	assert.Equal(t, category.ID, task.TaskCategories[0].CategoryID)
}

func TestTaskCreate_RejectsBadPriority(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	owner := createUser(t, db, "Alice", "alice@example.com")
	_, err := svc.Create(context.Background(), owner.ID, model.CreateTaskRequest{
		Title: "x", Priority: "URGENT",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestTaskUpdate_OwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	owner := createUser(t, db, "Alice", "alice@example.com")
	editor := createUser(t, db, "Bob", "bob@example.com")
	stranger := createUser(t, db, "Mallory", "mallory@example.com")
	task := createTask(t, db, owner.ID, "Ship release")
	addCollaborator(t, db, task.ID, editor.ID, model.RoleEditor)

	req := model.UpdateTaskRequest{Title: "hijacked", Status: model.StatusCompleted, Priority: model.PriorityHigh}

	_, err := svc.Update(context.Background(), task.ID, editor.ID, req)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(context.Background(), task.ID, stranger.ID, req)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.Update(context.Background(), task.ID, owner.ID,
		model.UpdateTaskRequest{Title: "Ship release v2", Status: model.StatusInProgress, Priority: model.PriorityHigh})
	require.NoError(t, err)
	assert.Equal(t, "Ship release v2", updated.Title)
	assert.Equal(t, model.StatusInProgress, updated.Status)
	assert.Equal(t, model.PriorityHigh, updated.Priority)
}

func TestTaskUpdate_RelinksOnlyOwnerRows(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	alice := createUser(t, db, "Alice", "alice@example.com")
	bob := createUser(t, db, "Bob", "bob@example.com")
	task := createTask(t, db, alice.ID, "Ship release")
	addCollaborator(t, db, task.ID, bob.ID, model.RoleEditor)

	bobTag := createTag(t, db, bob.ID, "inbox")
	_, err := svc.Personalize.Set(context.Background(), task.ID, bob.ID, []string{bobTag.ID}, "")
	require.NoError(t, err)

	aliceTag := createTag(t, db, alice.ID, "urgent")
	_, err = svc.Update(context.Background(), task.ID, alice.ID, model.UpdateTaskRequest{
		Title: "Ship release", Status: model.StatusPending, Priority: model.PriorityMedium,
		TagIDs: []string{aliceTag.ID},
	})
	require.NoError(t, err)

	bobView, err := svc.Personalize.Get(context.Background(), task.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bobTag.ID}, bobView.TagIDs)
}

func TestTaskDelete_CascadesRelations(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	alice := createUser(t, db, "Alice", "alice@example.com")
	bob := createUser(t, db, "Bob", "bob@example.com")
	task := createTask(t, db, alice.ID, "Ship release")
	addCollaborator(t, db, task.ID, bob.ID, model.RoleViewer)

	tag := createTag(t, db, alice.ID, "urgent")
	category := createCategory(t, db, alice.ID, "Work")
	_, err := svc.Personalize.Set(context.Background(), task.ID, alice.ID, []string{tag.ID}, category.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), task.ID, alice.ID))

	for _, m := range []interface{}{&model.TaskTag{}, &model.TaskCategory{}, &model.TaskCollaborator{}} {
		var count int64
		require.NoError(t, db.Model(m).Where("task_id = ?", task.ID).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	}

	_, err = svc.Get(context.Background(), task.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	page, err := svc.List(context.Background(), alice.ID, model.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestListShared_OnlySharedTasks(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	alice := createUser(t, db, "Alice", "alice@example.com")
	bob := createUser(t, db, "Bob", "bob@example.com")

	shared := createTask(t, db, alice.ID, "shared")
	createTask(t, db, alice.ID, "private")
	addCollaborator(t, db, shared.ID, bob.ID, model.RoleViewer)

	// Owner's view: only the task that has collaborators, as OWNER.
	aliceTasks, err := svc.ListShared(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceTasks, 1)
	assert.Equal(t, shared.ID, aliceTasks[0].ID)
	assert.Equal(t, model.RoleOwner, aliceTasks[0].CurrentUserRole)

	// Collaborator's view: same task, with the stored role.
	bobTasks, err := svc.ListShared(context.Background(), bob.ID)
	require.NoError(t, err)
	require.Len(t, bobTasks, 1)
	assert.Equal(t, shared.ID, bobTasks[0].ID)
	assert.Equal(t, model.RoleViewer, bobTasks[0].CurrentUserRole)
}

func TestTaskGet_ViewerSeesOwnOverlayOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := testTaskService(db)

	alice := createUser(t, db, "Alice", "alice@example.com")
	bob := createUser(t, db, "Bob", "bob@example.com")
	task := createTask(t, db, alice.ID, "Ship release")
	addCollaborator(t, db, task.ID, bob.ID, model.RoleViewer)

	aliceTag := createTag(t, db, alice.ID, "urgent")
	_, err := svc.Personalize.Set(context.Background(), task.ID, alice.ID, []string{aliceTag.ID}, "")
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), task.ID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TaskTags)
	assert.Empty(t, got.TaskCategories)
}
