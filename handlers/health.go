package handlers

import (
	"net/http"

	"accountcleanup/utils"

	"github.com/gin-gonic/gin"
)

// HealthReporter is satisfied by *utils.HealthMonitor.
type HealthReporter interface {
	Status() utils.HealthStatus
}

// HealthHandler reports the last dependency check.
func HealthHandler(reporter HealthReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := reporter.Status()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
