package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/buildingai/cozepkg/internal/shared/constants"
	"github.com/buildingai/cozepkg/internal/shared/errors"
	"github.com/buildingai/cozepkg/internal/shared/logger"
)

// getUserIDFromContext retrieves the caller id set by the auth middleware.
func getUserIDFromContext(c *gin.Context, log logger.Interface) (string, error) {
	userID := c.GetString(constants.ContextKeyUserID)
	if userID == "" {
		log.Warnw("user_id not found in context", "ip", c.ClientIP())
		return "", errors.NewUnauthorizedError("user not authenticated")
	}
	return userID, nil
}

// optionalUserID returns the caller id, or "" for anonymous requests.
func optionalUserID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserID)
}
