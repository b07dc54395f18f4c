package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflowapp/taskflow-backend/internal/api/middleware"
	"github.com/taskflowapp/taskflow-backend/internal/model"
	"github.com/taskflowapp/taskflow-backend/internal/service"
)

type PersonalizeHandler struct {
	Personalize *service.PersonalizeService
}

func NewPersonalizeHandler(personalize *service.PersonalizeService) *PersonalizeHandler {
	return &PersonalizeHandler{Personalize: personalize}
}

// Get handles GET /tasks/:id/personalize.
func (h *PersonalizeHandler) Get(c *gin.Context) {
	p, err := h.Personalize.Get(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// Set handles POST /tasks/:id/personalize.
func (h *PersonalizeHandler) Set(c *gin.Context) {
	var req model.PersonalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	p, err := h.Personalize.Set(c.Request.Context(), c.Param("id"), middleware.UserID(c), req.TagIDs, req.CategoryID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
