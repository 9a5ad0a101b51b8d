package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const breakerOpen = "open"

// ReadinessChecker reports upstream circuit breaker states keyed by provider.
type ReadinessChecker interface {
	UpstreamStates() map[string]string
}

// HealthHandler serves GET /readyz.
type HealthHandler struct {
	checker ReadinessChecker
}

// NewHealthHandler creates a readiness handler backed by checker.
func NewHealthHandler(checker ReadinessChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Ready handles GET /readyz. Any open breaker makes the instance not ready;
// half-open breakers still accept traffic so they can close again.
func (h *HealthHandler) Ready(c *gin.Context) {
	states := h.checker.UpstreamStates()
	for _, state := range states {
		if state == breakerOpen {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "upstreams": states})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "upstreams": states})
}
