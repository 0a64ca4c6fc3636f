package handlers

import (
	"errors"
	"net/http"

	"restaurant-ordering-api/bidding"
	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/reputation"

	"github.com/gin-gonic/gin"
)

type PlaceBidRequest struct {
	// Price is the bid in cents; omit or send null to abstain.
	Price *int64 `json:"price_cents"`
}

// GetAvailableOrders shows PENDING orders that have no deliverer assigned
func GetAvailableOrders(c *gin.Context) {
	var orders []models.Order
	config.DB.Preload("Items.Product").
		Where("status = ? AND assigned_deliverer_id IS NULL", models.OrderPending).
		Order("created_at asc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{
		"count":  len(orders),
		"orders": orders,
	})
}

// PlaceBid records or overwrites the deliverer's bid for an order. A null
// price is an abstention: it signals declination rather than silence.
func PlaceBid(c *gin.Context) {
	delivererID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.AssignedDelivererID != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Order already has an assigned deliverer"})
		return
	}

	var req PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bid, err := bidding.NewEngine(config.DB).PlaceBid(order.ID, delivererID, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, bidding.ErrInvalidBid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place bid"})
		}
		return
	}

	message := "Bid placed"
	if bid.Price == nil {
		message = "Abstention recorded"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "bid": bid})
}

// GetMyDeliveries returns all orders assigned to the logged-in deliverer
func GetMyDeliveries(c *gin.Context) {
	delivererID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("Items.Product").Preload("Customer.User").
		Where("assigned_deliverer_id = ?", delivererID).
		Order("updated_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// DeliverOrder transitions ASSIGNED → DELIVERED for the assigned deliverer
func DeliverOrder(c *gin.Context) {
	delivererID := middleware.GetUserID(c)

	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.AssignedDelivererID == nil || *order.AssignedDelivererID != delivererID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned deliverer for this order"})
		return
	}
	if order.Status != models.OrderAssigned {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Only assigned orders can be delivered",
			"current_status": order.Status,
		})
		return
	}

	config.DB.Model(&order).Update("status", models.OrderDelivered)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Order delivered successfully",
		"order_id": order.ID,
		"status":   models.OrderDelivered,
	})
}

// GetMyReputation returns the worker's score, status, and average rating
func GetMyReputation(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var employee models.Employee
	if err := config.DB.Where("user_id = ?", userID).First(&employee).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee profile not found"})
		return
	}

	engine := reputation.NewEngine(config.DB)
	score, err := engine.Score(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute score"})
		return
	}

	resp := gin.H{
		"score":             score,
		"employment_status": employee.EmploymentStatus,
		"salary_cents":      employee.Salary,
	}
	if avg, ok, err := engine.AverageRating(userID, middleware.GetRole(c)); err == nil && ok {
		resp["average_rating"] = avg
	}
	c.JSON(http.StatusOK, resp)
}
