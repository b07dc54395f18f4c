package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflowapp/taskflow-backend/internal/api/middleware"
	"github.com/taskflowapp/taskflow-backend/internal/model"
	"github.com/taskflowapp/taskflow-backend/internal/service"
)

type TagHandler struct {
	Tags *service.TagService
}

func NewTagHandler(tags *service.TagService) *TagHandler {
	return &TagHandler{Tags: tags}
}

func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.Tags.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, tags)
}

func (h *TagHandler) Get(c *gin.Context) {
	tag, err := h.Tags.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, tag)
}

func (h *TagHandler) Create(c *gin.Context) {
	var req model.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tag, err := h.Tags.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.Color)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, tag)
}

func (h *TagHandler) Update(c *gin.Context) {
	var req model.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tag, err := h.Tags.Update(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Name, req.Color)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.Tags.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ResponseAPI{Success: true, Message: "Tag deleted"})
}
