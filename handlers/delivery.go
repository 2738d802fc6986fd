package handlers

import (
	"net/http"

	"superapp-api/models"
	"superapp-api/roles"
	"superapp-api/statemachine"
	"superapp-api/views"

	"github.com/gin-gonic/gin"
)

type OnlineRequest struct {
	Online *bool `json:"online" binding:"required"`
}

type AdvanceRequest struct {
	Status models.OrderStatus `json:"status"`
}

// SetOnline toggles whether the partner is looking for work
func (h *Handler) SetOnline(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok || !h.allow(c, user, roles.ActionToggleOnline) {
		return
	}
	var req OnlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.router.SetOnline(user.UID, *req.Online); err != nil {
		respondError(c, err)
		return
	}
	h.screen(c, user.UID, http.StatusOK)
}

// GetAvailableOrders shows the pending pool to an online partner
func (h *Handler) GetAvailableOrders(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	sess, err := h.router.Get(user.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	orders := []models.Order{}
	if sess.Online {
		orders = views.Pool(h.store.Snapshot().Orders)
	}
	c.JSON(http.StatusOK, gin.H{
		"online": sess.Online,
		"count":  len(orders),
		"orders": orders,
	})
}

// GetActiveOrder returns the order the partner is working on, if any
func (h *Handler) GetActiveOrder(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	orders := h.store.Snapshot().Orders
	resp := gin.H{"delivered": views.DeliveredByPartner(orders, user.UID)}
	if active, found := views.ActiveForPartner(orders, user.UID); found {
		resp["order"] = active
		if next, ok := statemachine.Next(active.Status); ok {
			resp["next_status"] = next
		}
	} else {
		resp["order"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

// AcceptOrder claims a pending order for the partner
func (h *Handler) AcceptOrder(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok || !h.allow(c, user, roles.ActionAcceptOrder) {
		return
	}
	order, err := h.actions.Accept(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order accepted",
		"order":   order,
	})
}

// AdvanceOrder moves the partner's order one step along the lifecycle.
// An optional status in the body must name that next step.
func (h *Handler) AdvanceOrder(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok || !h.allow(c, user, roles.ActionAdvanceOrder) {
		return
	}
	var req AdvanceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	orderID := c.Param("id")
	var (
		order models.Order
		err   error
	)
	if req.Status != "" {
		order, err = h.actions.AdvanceTo(c.Request.Context(), user, orderID, req.Status)
	} else {
		order, err = h.actions.Advance(c.Request.Context(), user, orderID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "Order status updated",
		"order":             order,
		"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
	})
}
