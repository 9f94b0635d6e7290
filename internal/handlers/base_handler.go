package handlers

import (
	"net/http"

	"evervoice_backend/internal/logger"
	"evervoice_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// respondError translates an error into the HTTP response. AppError picks
// its own status; anything else is a 500 with a generic body.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.WithError(err).Error("request failed", "path", c.Request.URL.Path)
		}
		c.JSON(appErr.HTTPCode, gin.H{"error": appErr})
		return
	}

	logger.WithError(err).Error("unexpected error", "path", c.Request.URL.Path)
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
		"code":    apperrors.CodeInternalError,
		"message": "Internal server error",
	}})
}

// bindJSON decodes and validates a JSON body, responding 400 on failure.
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		respondError(c, apperrors.ValidationError(err.Error()))
		return false
	}
	return true
}
