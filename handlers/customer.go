package handlers

import (
	"errors"
	"log"
	"net/http"

	"restaurant-ordering-api/account"
	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/settlement"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	OrderType models.ProductType `json:"order_type" binding:"required"`
	Items     []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

type DepositRequest struct {
	Amount int64 `json:"amount_cents" binding:"required,min=1"`
}

type RateProductRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// currentCustomer loads the customer profile for the authenticated user.
func currentCustomer(c *gin.Context) (*models.Customer, bool) {
	var customer models.Customer
	if err := config.DB.Where("user_id = ?", middleware.GetUserID(c)).First(&customer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer profile not found"})
		return nil, false
	}
	return &customer, true
}

// Deposit adds funds to the customer's balance
func Deposit(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newBalance := customer.Balance + req.Amount
	if err := config.DB.Model(customer).Update("balance", newBalance).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deposit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Deposit successful",
		"balance_cents": newBalance,
	})
}

// PlaceOrder settles the customer's cart. The handler resolves products,
// rejects mixed food/merch carts and VIP-exclusive items for non-VIPs, and
// escalates a warning when the charge bounces — the settlement engine
// itself only rejects.
func PlaceOrder(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var items []settlement.LineItem
	for _, reqItem := range req.Items {
		var product models.Product
		if err := config.DB.First(&product, reqItem.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if !product.IsAvailable {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product '" + product.Name + "' is not available"})
			return
		}
		// Homogeneous carts only: every line must match the declared order type
		if product.Type != req.OrderType {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mixed carts are not allowed: '" + product.Name + "' is not of type " + string(req.OrderType)})
			return
		}
		if product.VIPExclusive && !customer.VIP {
			c.JSON(http.StatusForbidden, gin.H{"error": "Product '" + product.Name + "' is VIP exclusive"})
			return
		}
		items = append(items, settlement.LineItem{Product: &product, Quantity: reqItem.Quantity})
	}

	tracker := account.NewTracker(config.DB)
	engine := settlement.NewEngine(config.DB, tracker)

	order, err := engine.PlaceOrder(customer, items, req.OrderType)
	if err != nil && order != nil {
		// The customer was charged and the order exists; only the VIP
		// recheck failed. Report success rather than a phantom failure.
		log.Printf("VIP re-evaluation failed for customer %d: %v", customer.ID, err)
		err = nil
	}
	if err != nil {
		switch {
		case errors.Is(err, settlement.ErrInsufficientBalance):
			// Failed charge attempts accumulate warnings
			if werr := tracker.AddWarning(customer); werr != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record warning"})
				return
			}
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error":    "Insufficient balance",
				"warnings": customer.Warnings,
			})
		case errors.Is(err, settlement.ErrInvalidOrder):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	config.DB.Preload("Items.Product").First(order, order.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Order placed successfully",
		"order":         order,
		"balance_cents": customer.Balance,
		"vip":           customer.VIP,
	})
}

// GetMyOrders returns all orders for the logged-in customer
func GetMyOrders(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}
	var orders []models.Order
	config.DB.Preload("Items.Product").Preload("AssignedDeliverer").
		Where("customer_id = ?", customer.ID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// RateProduct records a 1-5 rating, overwriting the customer's previous
// rating of the same product if one exists.
func RateProduct(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req RateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var rating models.ProductRating
	err := config.DB.Where("product_id = ? AND rater_id = ?", product.ID, userID).First(&rating).Error
	if err == nil {
		config.DB.Model(&rating).Update("rating", req.Rating)
	} else {
		rating = models.ProductRating{ProductID: product.ID, RaterID: userID, Rating: req.Rating}
		if err := config.DB.Create(&rating).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating saved", "rating": rating})
}

// ListCustomerProducts is the authenticated product listing: VIP customers
// also see VIP-exclusive items.
func ListCustomerProducts(c *gin.Context) {
	customer, ok := currentCustomer(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Creator").Where("is_available = ?", true)
	if !customer.VIP {
		query = query.Where("vip_exclusive = ?", false)
	}
	if ptype := c.Query("type"); ptype != "" {
		query = query.Where("type = ?", ptype)
	}

	var products []models.Product
	query.Find(&products)
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}
