package routes

import (
	"restaurant-ordering-api/handlers"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Menu browsing (no auth needed)
		public.GET("/products", handlers.ListProducts)
		public.GET("/products/:id", handlers.GetProduct)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer), middleware.ActiveAccountRequired())
	{
		customer.GET("/products", handlers.ListCustomerProducts)
		customer.POST("/deposit", handlers.Deposit)
		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.POST("/products/:id/rate", handlers.RateProduct)
		customer.POST("/compliments", handlers.FileCompliment)
		customer.POST("/complaints", handlers.FileComplaint)
		customer.GET("/complaints", handlers.GetMyComplaints)
	}

	// ── Deliverer routes ───────────────────────────────────────────
	deliverer := r.Group("/api/deliverer")
	deliverer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleDeliverer), middleware.ActiveAccountRequired())
	{
		deliverer.GET("/orders/available", handlers.GetAvailableOrders)
		deliverer.POST("/orders/:id/bid", handlers.PlaceBid)
		deliverer.GET("/orders/my-deliveries", handlers.GetMyDeliveries)
		deliverer.PUT("/orders/:id/deliver", handlers.DeliverOrder)
		deliverer.GET("/reputation", handlers.GetMyReputation)
	}

	// ── Chef routes ────────────────────────────────────────────────
	chef := r.Group("/api/chef")
	chef.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleChef), middleware.ActiveAccountRequired())
	{
		chef.GET("/reputation", handlers.GetMyReputation)
	}

	// ── Manager routes ─────────────────────────────────────────────
	manager := r.Group("/api/manager")
	manager.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleManager), middleware.ActiveAccountRequired())
	{
		manager.GET("/registrations", handlers.GetPendingRegistrations)
		manager.PUT("/registrations/:id/approve", handlers.ApproveRegistration)
		manager.PUT("/users/:id/forgive", handlers.ForgiveUser)
		manager.DELETE("/users/:id", handlers.KickCustomer)
		manager.GET("/users", handlers.GetAllUsers)

		manager.GET("/complaints", handlers.GetPendingComplaints)
		manager.PUT("/complaints/:id/review", handlers.ReviewComplaint)

		manager.GET("/orders/:id/bids", handlers.GetOrderBids)
		manager.PUT("/orders/:id/assign", handlers.AssignOrder)

		manager.POST("/products", handlers.CreateProduct)
	}
}
