package response

import (
	"log"
	"net/http"

	"github.com/fanbaselab/fanbase/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID retrieves the authenticated user ID set by the auth middleware.
func GetUserID(c *gin.Context) (string, error) {
	raw, exists := c.Get("user_id")
	if !exists {
		return "", apperror.ErrUnauthorized
	}

	userID, ok := raw.(string)
	if !ok {
		return "", apperror.ErrUnauthorized
	}
	if _, err := uuid.Parse(userID); err != nil {
		return "", apperror.ErrUnauthorized
	}

	return userID, nil
}

// Error writes a standardized error response.
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code == http.StatusInternalServerError {
		log.Printf("[internal error] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// OK writes a 200 response with the payload under "data".
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the payload under "data".
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}
