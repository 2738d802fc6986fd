package handlers

import (
	"net/http"

	"superapp-api/actions"
	"superapp-api/models"

	"github.com/gin-gonic/gin"
)

// Register creates a new account and logs it in
func (h *Handler) Register(c *gin.Context) {
	var req actions.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.actions.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.startSession(c, user, http.StatusCreated, "Account created successfully")
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req actions.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.actions.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.startSession(c, user, http.StatusOK, "Login successful")
}

func (h *Handler) startSession(c *gin.Context, user models.User, status int, message string) {
	sess, err := h.router.Start(user)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.tokens.Generate(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(status, gin.H{
		"message": message,
		"token":   token,
		"user":    user.Public(),
		"view":    sess.View,
	})
}

// Logout ends the caller's session and forgets the persisted session user
func (h *Handler) Logout(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	if err := h.actions.Logout(c.Request.Context(), user.UID); err != nil {
		respondError(c, err)
		return
	}
	h.router.End(user.UID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "view": "auth"})
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}
