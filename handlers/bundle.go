// File: accountcleanup/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups all endpoint handlers and the settings routes need.
type HandlerBundle struct {
	Logger *zap.Logger

	// Auth event endpoints
	EventSigningSecret []byte
	UserDeletedHandler gin.HandlerFunc

	// Admin endpoints
	AdminToken        string
	MaxRequestsPerMin int
	AdminHandler      *AdminHandler

	// Operations
	HealthHandler  gin.HandlerFunc
	MetricsHandler gin.HandlerFunc
}
