package routes

import (
	"superapp-api/handlers"
	"superapp-api/middleware"
	"superapp-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens *middleware.Tokens) {
	r.GET("/health", h.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Catalog (no auth needed)
		public.GET("/categories", h.ListCategories)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(tokens))
	{
		auth.GET("/profile", h.GetProfile)
		auth.POST("/auth/logout", h.Logout)
		auth.GET("/session", h.GetSession)
		auth.PUT("/session/view", h.Navigate)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(tokens), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/categories/:id", h.OpenCategory)
		customer.POST("/checkout", h.StartCheckout)
		customer.POST("/orders", h.PlaceOrder)
		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/location/search", h.SearchLocation)
		customer.PUT("/location", h.ConfirmLocation)
	}

	// ── Delivery partner routes ────────────────────────────────────
	delivery := r.Group("/api/delivery")
	delivery.Use(middleware.AuthRequired(tokens), middleware.RoleRequired(models.RoleDelivery))
	{
		delivery.PUT("/online", h.SetOnline)
		delivery.GET("/orders/available", h.GetAvailableOrders)
		delivery.GET("/orders/active", h.GetActiveOrder)
		delivery.PUT("/orders/:id/accept", h.AcceptOrder)
		delivery.PUT("/orders/:id/advance", h.AdvanceOrder)
	}

	// ── Vendor routes ──────────────────────────────────────────────
	vendor := r.Group("/api/vendor")
	vendor.Use(middleware.AuthRequired(tokens), middleware.RoleRequired(models.RoleVendor))
	{
		vendor.GET("/orders", h.GetVendorOrders)
		vendor.GET("/products", h.GetCatalog)
		vendor.POST("/products", h.AddProduct)
		vendor.PUT("/products/:id/price", h.UpdatePrice)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(tokens), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/users", h.AdminGetAllUsers)
		admin.PUT("/users/:uid/password", h.AdminResetPassword)
		admin.GET("/report", h.AdminReport)
	}
}
