package handlers

import (
	"fmt"
	"net/http"
	"time"

	"superapp-api/models"
	"superapp-api/report"
	"superapp-api/roles"
	"superapp-api/views"

	"github.com/gin-gonic/gin"
)

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminStats returns revenue, counts, the most popular item and the
// recommendations
func (h *Handler) AdminStats(c *gin.Context) {
	snap := h.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"stats":   views.Stats(snap.Orders, snap.Users),
		"summary": views.StatusSummary(snap.Orders),
	})
}

// AdminGetAllUsers lists every registered user, passwords stripped
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	snap := h.store.Snapshot()
	users := make([]models.User, 0, len(snap.Users))
	role := models.UserRole(c.Query("role"))
	for _, u := range snap.Users {
		if role != "" && u.Role != role {
			continue
		}
		users = append(users, u.Public())
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminResetPassword overwrites any user's password
func (h *Handler) AdminResetPassword(c *gin.Context) {
	admin, ok := h.caller(c)
	if !ok || !h.allow(c, admin, roles.ActionResetPassword) {
		return
	}
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.actions.ResetPassword(c.Request.Context(), admin, c.Param("uid"), req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated", "user": user.Public()})
}

// AdminReport downloads the orders and summary as a spreadsheet
func (h *Handler) AdminReport(c *gin.Context) {
	name := fmt.Sprintf("domi-report-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := report.Write(c.Writer, h.store.Snapshot()); err != nil {
		h.log.WithError(err).Error("write admin report")
		_ = c.Error(err)
	}
}
