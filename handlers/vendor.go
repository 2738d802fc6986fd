package handlers

import (
	"net/http"

	"superapp-api/actions"
	"superapp-api/roles"
	"superapp-api/views"

	"github.com/gin-gonic/gin"
)

type PriceRequest struct {
	Price *float64 `json:"price" binding:"required"`
}

// GetVendorOrders lists every order for the vendor's products, with a
// per-status summary
func (h *Handler) GetVendorOrders(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	orders := views.OrdersForVendor(h.store.Snapshot().Orders, user.UID)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(orders),
		"summary": views.StatusSummary(orders),
		"orders":  orders,
	})
}

// GetCatalog returns the vendor's own products
func (h *Handler) GetCatalog(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	products := views.Catalog(h.store.Snapshot().Products, user.UID)
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

// AddProduct publishes a new product in the vendor's catalog
func (h *Handler) AddProduct(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok || !h.allow(c, user, roles.ActionAddProduct) {
		return
	}
	var req actions.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.actions.AddProduct(c.Request.Context(), user, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product added", "product": product})
}

// UpdatePrice changes the price of one of the vendor's products
func (h *Handler) UpdatePrice(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok || !h.allow(c, user, roles.ActionEditPrice) {
		return
	}
	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	product, err := h.actions.UpdatePrice(c.Request.Context(), user, c.Param("id"), *req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Price updated", "product": product})
}
