package handlers

import (
	"net/http"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the available menu and merch (public). VIP-exclusive
// items are hidden here; authenticated VIP customers see them via the
// customer listing.
func ListProducts(c *gin.Context) {
	var products []models.Product
	query := config.DB.Preload("Creator").
		Where("is_available = ? AND vip_exclusive = ?", true, false)

	if ptype := c.Query("type"); ptype != "" {
		query = query.Where("type = ?", ptype)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	query.Find(&products)
	c.JSON(http.StatusOK, gin.H{
		"count":    len(products),
		"products": products,
	})
}

// GetProduct returns a single product with its average rating
func GetProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.Preload("Creator").First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var count int64
	var avg *float64
	config.DB.Model(&models.ProductRating{}).Where("product_id = ?", product.ID).Count(&count)
	if count > 0 {
		var mean float64
		config.DB.Model(&models.ProductRating{}).
			Where("product_id = ?", product.ID).
			Select("avg(rating)").Scan(&mean)
		avg = &mean
	}

	c.JSON(http.StatusOK, gin.H{
		"product":        product,
		"rating_count":   count,
		"average_rating": avg,
	})
}

// GetStateMachineInfo returns the employment state machine for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.Describe(),
		"terminal_states": []models.EmploymentStatus{models.EmploymentFired},
		"description":     "Employment status transitions driven by compliments and valid complaints",
	})
}
