package handler

import (
	"errors"
	"log"
	"net/http"

	apperrors "provest/internal/errors"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with one canonical envelope:
// success: {"success": true, "data": ...}
// failure: {"success": false, "error": {"code": ..., "message": ...}}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		if appErr.Type == apperrors.TypeInternal || appErr.Type == apperrors.TypeUnknown {
			log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(appErr.StatusCode(), gin.H{"success": false, "error": gin.H{"code": appErr.Code(), "message": appErr.Message}})
		return
	}
	log.Printf("[http] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"}})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": gin.H{"code": "VALIDATION_ERROR", "message": message}})
}
