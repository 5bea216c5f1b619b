package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/usermgmt/domain"
)

// SystemHandlers handles service-level HTTP requests
type SystemHandlers struct {
	statsSvc   domain.StatsService
	apiVersion string
}

// NewSystemHandlers creates new system handlers
func NewSystemHandlers(statsSvc domain.StatsService, apiVersion string) *SystemHandlers {
	return &SystemHandlers{
		statsSvc:   statsSvc,
		apiVersion: apiVersion,
	}
}

// Root handles GET /
func (h *SystemHandlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "User Management API",
		"version": h.apiVersion,
	})
}

// Health handles GET /health
func (h *SystemHandlers) Health(c *gin.Context) {
	report, err := h.statsSvc.Health(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Health check failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          report.Status,
		"timestamp":       report.Timestamp.Format(time.RFC3339),
		"memory_users":    report.MemoryUsers,
		"memory_sessions": report.MemorySessions,
	})
}

// Stats handles GET /stats. Detail mode lists user emails but session
// tokens stay out of the response no matter what.
func (h *SystemHandlers) Stats(c *gin.Context) {
	includeDetails := c.Query("include_details") == "true"

	stats, err := h.statsSvc.Stats(c.Request.Context(), includeDetails)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to collect stats"})
		return
	}

	body := gin.H{
		"total_users":     stats.TotalUsers,
		"active_users":    stats.ActiveUsers,
		"inactive_users":  stats.InactiveUsers,
		"active_sessions": stats.ActiveSessions,
		"api_version":     h.apiVersion,
	}
	if includeDetails {
		body["user_emails"] = stats.UserEmails
		body["session_tokens"] = []string{}
	}

	c.JSON(http.StatusOK, body)
}
