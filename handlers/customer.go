package handlers

import (
	"net/http"

	"superapp-api/actions"
	"superapp-api/geocode"
	"superapp-api/models"
	"superapp-api/roles"
	"superapp-api/views"

	"github.com/gin-gonic/gin"
)

type CheckoutRequest struct {
	ProductID string `json:"productId"`
	Item      string `json:"item"`
	Taxi      bool   `json:"taxi"`
}

type PlaceOrderRequest struct {
	Note string `json:"note" binding:"required"`
}

type LocationRequest struct {
	Lat     *float64 `json:"lat" binding:"required"`
	Lng     *float64 `json:"lng" binding:"required"`
	Address string   `json:"address"`
}

// OpenCategory selects a category and shows its products (or the taxi form)
func (h *Handler) OpenCategory(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok || !h.allow(c, user, roles.ActionSelectCategory) {
		return
	}
	if _, err := h.router.SelectCategory(user.UID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.screen(c, user.UID, http.StatusOK)
}

// StartCheckout keeps the chosen item as the checkout draft
func (h *Handler) StartCheckout(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok || !h.allow(c, user, roles.ActionStartCheckout) {
		return
	}
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	draft := roles.Draft{Item: models.TaxiItem, Taxi: true}
	if !req.Taxi {
		p, found := actions.CatalogItem(h.store.Snapshot().Products, req.ProductID, req.Item)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Item is not in the catalog"})
			return
		}
		draft = roles.Draft{ProductID: p.ID, Item: p.Name, Price: p.Price}
	}
	if _, err := h.router.StartCheckout(user.UID, draft); err != nil {
		respondError(c, err)
		return
	}
	h.screen(c, user.UID, http.StatusOK)
}

// PlaceOrder confirms the checkout draft with the delivery note
func (h *Handler) PlaceOrder(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok || !h.allow(c, user, roles.ActionPlaceOrder) {
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A note for the partner is required"})
		return
	}
	sess, err := h.router.Get(user.UID)
	if err != nil {
		respondError(c, err)
		return
	}
	if sess.Draft == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Nothing to check out"})
		return
	}

	order, err := h.actions.PlaceOrder(c.Request.Context(), user, actions.CheckoutInput{
		ProductID: sess.Draft.ProductID,
		Item:      sess.Draft.Item,
		Price:     sess.Draft.Price,
		Taxi:      sess.Draft.Taxi,
		Note:      req.Note,
		Location:  sess.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := h.router.FinishCheckout(user.UID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetMyOrders lists the caller's orders that are not delivered yet
func (h *Handler) GetMyOrders(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok {
		return
	}
	orders := views.OrdersForClient(h.store.Snapshot().Orders, user.UID)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// SearchLocation looks up address candidates for the location picker
func (h *Handler) SearchLocation(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok || !h.allow(c, user, roles.ActionSearchLocation) {
		return
	}
	places, err := h.geo.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.log.WithError(err).WithField("uid", user.UID).Warn("geocode search failed")
		places = nil
	}
	if places == nil {
		places = []geocode.Place{}
	}
	c.JSON(http.StatusOK, gin.H{"count": len(places), "results": places})
}

// ConfirmLocation pins the delivery location and returns to the dashboard
func (h *Handler) ConfirmLocation(c *gin.Context) {
	user, ok := h.caller(c)
	if !ok || !h.allow(c, user, roles.ActionConfirmLocation) {
		return
	}
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loc := models.Location{Lat: *req.Lat, Lng: *req.Lng, Address: req.Address}
	if _, err := h.router.SetLocation(user.UID, loc); err != nil {
		respondError(c, err)
		return
	}
	h.screen(c, user.UID, http.StatusOK)
}
