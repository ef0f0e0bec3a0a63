// File: accountcleanup/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"

	"accountcleanup/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	UserService user.UserService
	logger      *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(us user.UserService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{UserService: us, logger: logger}
}

// DeleteUserHandler removes an account from Firebase Auth and queues the
// cleanup of its documents.
func (ah *AdminHandler) DeleteUserHandler(c *gin.Context) {
	uid := c.Param("uid")

	eventID, err := ah.UserService.DeleteUser(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, user.ErrEmptyUID) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "uid is required"})
			return
		}
		ah.logger.Error("Failed to delete user", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"uid": uid, "eventId": eventID})
}
