package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	AI        string `json:"ai"`
}

// HealthHandler reports liveness and readiness. The AI collaborators are
// optional: the app runs degraded without them, the collection does not.
type HealthHandler struct {
	aiReady bool
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(aiReady bool) *HealthHandler {
	return &HealthHandler{aiReady: aiReady}
}

// HandleHealth returns the health status of the service.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	aiStatus := "unavailable"
	status := "degraded"
	if h.aiReady {
		aiStatus = "ready"
		status = "healthy"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		AI:        aiStatus,
	})
}

// HandleReadiness returns whether the service is ready to accept traffic.
// The store is opened before the router starts, so reaching this handler
// at all means the collection is loaded.
func (h *HealthHandler) HandleReadiness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
