package handlers

import (
	"context"
	"net/http"
	"time"

	"reservation-api/obs"
	"reservation-api/statemachine"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Restaurant Reservation API",
		"service": obs.ServiceName,
		"docs":    "/state-machine",
		"health":  "/health",
		"roles":   []string{"user", "admin"},
	})
}

// Health pings the database
func (h *Handler) Health(c *gin.Context) {
	if h.ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			h.log.WarnContext(ctx, "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "service": obs.ServiceName})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": obs.ServiceName})
}

// GetStateMachineInfo returns the reservation lifecycle for documentation
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": statemachine.TerminalStates(),
		"description":     "Restaurant Reservation Lifecycle State Machine",
	})
}
