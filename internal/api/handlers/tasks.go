package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskflowapp/taskflow-backend/internal/api/middleware"
	"github.com/taskflowapp/taskflow-backend/internal/model"
	"github.com/taskflowapp/taskflow-backend/internal/service"
)

type TaskHandler struct {
	Tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

// List handles GET /tasks with the full filter/sort/pagination query
// string.
func (h *TaskHandler) List(c *gin.Context) {
	filter := model.TaskFilter{
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		CategoryID: c.Query("categoryId"),
		Search:     c.Query("search"),
		SortBy:     c.DefaultQuery("sortBy", "createdAt"),
		SortOrder:  c.DefaultQuery("sortOrder", "desc"),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.TagNames = strings.Split(tags, ",")
	}
	if from := c.Query("fromDate"); from != "" {
		filter.FromDate = &from
	}
	if to := c.Query("toDate"); to != "" {
		filter.ToDate = &to
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))

	page, err := h.Tasks.List(c.Request.Context(), middleware.UserID(c), filter)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TaskListResponse{
		Success:    true,
		Data:       page.Items,
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	})
}

// ListShared handles GET /collab.
func (h *TaskHandler) ListShared(c *gin.Context) {
	tasks, err := h.Tasks.ListShared(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, task)
}

func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.Tasks.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req model.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.Tasks.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ResponseAPI{Success: true, Message: "Task deleted"})
}
