package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflowapp/taskflow-backend/internal/api/middleware"
	"github.com/taskflowapp/taskflow-backend/internal/model"
	"github.com/taskflowapp/taskflow-backend/internal/service"
)

type CategoryHandler struct {
	Categories *service.CategoryService
}

func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{Categories: categories}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.Categories.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.Categories.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.Categories.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.Color)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req model.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	category, err := h.Categories.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Name, req.Color)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Categories.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ResponseAPI{Success: true, Message: "Category deleted"})
}
