package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Success responses
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error responses
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: "Not found"})
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Server error"
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: message})
}
