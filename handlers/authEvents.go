package handlers

import (
	"errors"
	"net/http"

	"accountcleanup/models"
	"accountcleanup/services/cleanup"
	"accountcleanup/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthEventHandler receives Firebase Auth user-deleted events.
type AuthEventHandler struct {
	Events cleanup.EventHandler
	logger *zap.Logger
}

func NewAuthEventHandler(events cleanup.EventHandler, logger *zap.Logger) *AuthEventHandler {
	return &AuthEventHandler{Events: events, logger: logger}
}

// UserDeletedHandler runs the cascade synchronously so the delivering platform
// sees the outcome: 200 on success, an error status when the run failed.
func (h *AuthEventHandler) UserDeletedHandler(c *gin.Context) {
	var event models.AuthEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		utils.JSONError(c, h.logger, http.StatusBadRequest, "Invalid event payload", err.Error())
		return
	}

	uid := event.DeletedUID()
	if uid == "" {
		utils.JSONError(c, h.logger, http.StatusBadRequest, "Invalid event payload", "missing uid")
		return
	}

	eventID := event.EventID
	if eventID == "" {
		// CloudEvents binary mode carries the id as a header.
		eventID = c.GetHeader("Ce-Id")
	}

	result, err := h.Events.HandleEvent(c.Request.Context(), eventID, uid)
	if err != nil {
		status := utils.StatusForStoreError(err)
		if errors.Is(err, cleanup.ErrEmptyUID) {
			status = http.StatusBadRequest
		}
		h.logger.Error("user data cleanup failed", zap.String("uid", uid), zap.String("eventId", eventID), zap.Error(err))
		c.JSON(status, utils.ErrorResponse{Message: "User data cleanup failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
