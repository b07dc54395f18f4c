package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflowapp/taskflow-backend/internal/api/middleware"
	"github.com/taskflowapp/taskflow-backend/internal/model"
	"github.com/taskflowapp/taskflow-backend/internal/service"
)

type AuthHandler struct {
	Auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusCreated, user.ToResponse())
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, user, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, model.LoginResponse{Token: token, User: user.ToResponse()})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.Auth.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, user.ToResponse())
}
