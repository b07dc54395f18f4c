package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflowapp/taskflow-backend/internal/model"
	"github.com/taskflowapp/taskflow-backend/internal/service"
)

// fail maps an expected service error to its status; anything else is
// logged and reported as a generic server error.
func fail(c *gin.Context, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, service.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, service.ErrForbidden):
		status, message = http.StatusForbidden, "Not allowed"
	case errors.Is(err, service.ErrNotFound):
		status, message = http.StatusNotFound, "Not found"
	case errors.Is(err, service.ErrConflict):
		status, message = http.StatusConflict, "Already exists"
	case errors.Is(err, service.ErrValidation):
		status, message = http.StatusBadRequest, "Invalid input"
	default:
		log.Println("internal error:", err)
		status, message = http.StatusInternalServerError, "Server error"
	}

	c.JSON(status, model.ResponseAPI{Success: false, Message: message})
}

func ok(c *gin.Context, status int, data interface{}) {
	c.JSON(status, model.ResponseAPI{Success: true, Data: data})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.ResponseAPI{Success: false, Message: "Invalid request: " + err.Error()})
}
