package handlers

import (
	"net/http"

	"superapp-api/models"
	"superapp-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListCategories returns the fixed category list (public)
func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"count":      len(models.Categories),
		"categories": models.Categories,
	})
}

// GetStateMachineInfo returns the full state machine for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	var terminal []models.OrderStatus
	for _, s := range []models.OrderStatus{
		models.StatusPending, models.StatusAccepted, models.StatusAtStore,
		models.StatusOnTheWay, models.StatusDelivered, models.StatusCancelled,
	} {
		if statemachine.Terminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": terminal,
		"description":     "DOMI Order Lifecycle State Machine",
	})
}

// Health reports liveness and the size of the entity store
func (h *Handler) Health(c *gin.Context) {
	snap := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "DOMI Super App API",
		"version": "1.0.0",
		"orders":  len(snap.Orders),
		"users":   len(snap.Users),
	})
}
