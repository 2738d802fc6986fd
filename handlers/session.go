package handlers

import (
	"net/http"

	"superapp-api/roles"

	"github.com/gin-gonic/gin"
)

type NavigateRequest struct {
	View roles.View `json:"view" binding:"required"`
}

// GetSession renders the caller's current screen: view, actions and data
func (h *Handler) GetSession(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	h.screen(c, user.UID, http.StatusOK)
}

// Navigate switches the caller to another view of their role
func (h *Handler) Navigate(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.router.Navigate(user.UID, req.View); err != nil {
		respondError(c, err)
		return
	}
	h.screen(c, user.UID, http.StatusOK)
}
