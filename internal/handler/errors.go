package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/quizhub-api/internal/pkg/errors"
)

// handleServiceError преобразует ошибки сервисного слоя в HTTP-ответы.
// Неизвестные ошибки логируются и отдаются клиенту как 500 без деталей.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: internal server error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUserID извлекает идентификатор пользователя, установленный AuthMiddleware
func currentUserID(c *gin.Context) (uint, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		handleServiceError(c, apperrors.ErrUnauthorized)
		return 0, false
	}
	userID, ok := raw.(uint)
	if !ok {
		handleServiceError(c, errors.New("invalid user ID in context"))
		return 0, false
	}
	return userID, true
}
