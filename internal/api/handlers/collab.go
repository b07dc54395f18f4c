package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflowapp/taskflow-backend/internal/api/middleware"
	"github.com/taskflowapp/taskflow-backend/internal/model"
	"github.com/taskflowapp/taskflow-backend/internal/service"
)

type CollabHandler struct {
	Collab *service.CollabService
}

func NewCollabHandler(collab *service.CollabService) *CollabHandler {
	return &CollabHandler{Collab: collab}
}

// Members handles GET /tasks/:id/collab.
func (h *CollabHandler) Members(c *gin.Context) {
	members, err := h.Collab.Members(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, members)
}

// Invite handles POST /tasks/:id/collab.
func (h *CollabHandler) Invite(c *gin.Context) {
	var req model.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.Collab.Add(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Emails, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, result)
}

// ChangeRole handles PUT /tasks/:id/collab.
func (h *CollabHandler) ChangeRole(c *gin.Context) {
	var req model.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	collab, err := h.Collab.ChangeRole(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Email, req.Role)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, collab)
}

// Remove handles DELETE /tasks/:id/collab.
func (h *CollabHandler) Remove(c *gin.Context) {
	var req model.RemoveCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.Collab.Remove(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.Email); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ResponseAPI{Success: true, Message: "Collaborator removed"})
}
