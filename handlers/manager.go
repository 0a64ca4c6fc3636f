package handlers

import (
	"net/http"
	"time"

	"restaurant-ordering-api/account"
	"restaurant-ordering-api/bidding"
	"restaurant-ordering-api/config"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/reputation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ApproveRegistrationRequest struct {
	// Employment terms, required when approving a chef or deliverer.
	Salary   int64 `json:"salary_cents"`
	Bonus    int64 `json:"bonus_cents"`
	Demotion int64 `json:"demotion_cents"`
}

type ReviewComplaintRequest struct {
	Decision models.ComplaintStatus `json:"decision" binding:"required"`
}

type AssignOrderRequest struct {
	DelivererID uint `json:"deliverer_id" binding:"required"`
}

type ProductRequest struct {
	Name         string             `json:"name" binding:"required"`
	Price        int64              `json:"price_cents" binding:"required,min=1"`
	Type         models.ProductType `json:"type" binding:"required"`
	CreatorID    *uint              `json:"creator_id"`
	VIPExclusive bool               `json:"vip_exclusive"`
}

// GetPendingRegistrations lists accounts awaiting approval
func GetPendingRegistrations(c *gin.Context) {
	var users []models.User
	config.DB.Where("status = ?", models.AccountPending).Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// ApproveRegistration activates a pending account and creates its role
// profile in the same transaction.
func ApproveRegistration(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.Status != models.AccountPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Account is not pending approval"})
		return
	}

	// Employment terms only exist for chefs and deliverers; approving a
	// customer or manager takes no body at all.
	var req ApproveRegistrationRequest
	if user.Role == models.RoleChef || user.Role == models.RoleDeliverer {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Salary <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "salary_cents is required to approve an employee"})
			return
		}
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("status", models.AccountActive).Error; err != nil {
			return err
		}
		switch user.Role {
		case models.RoleCustomer:
			return tx.Create(&models.Customer{UserID: user.ID}).Error
		case models.RoleChef, models.RoleDeliverer:
			return tx.Create(&models.Employee{
				UserID:           user.ID,
				Salary:           req.Salary,
				Bonus:            req.Bonus,
				Demotion:         req.Demotion,
				EmploymentStatus: models.EmploymentOkay,
			}).Error
		case models.RoleManager:
			return tx.Create(&models.Manager{UserID: user.ID}).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve registration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration approved",
		"user_id": user.ID,
		"role":    user.Role,
	})
}

// ForgiveUser lifts a suspension and reactivates the account
func ForgiveUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.Status != models.AccountSuspended {
		c.JSON(http.StatusConflict, gin.H{"error": "Account is not suspended"})
		return
	}

	config.DB.Model(&user).Update("status", models.AccountActive)

	c.JSON(http.StatusOK, gin.H{"message": "Account reactivated", "user_id": user.ID})
}

// KickCustomer removes a customer and their profile entirely
func KickCustomer(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.Role != models.RoleCustomer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only customers can be kicked"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to kick customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer removed", "user_id": user.ID})
}

// GetPendingComplaints lists complaints awaiting review
func GetPendingComplaints(c *gin.Context) {
	var complaints []models.Complaint
	config.DB.Preload("Sender").Preload("Recipient").
		Where("status = ?", models.ComplaintPending).
		Order("created_at asc").
		Find(&complaints)
	c.JSON(http.StatusOK, gin.H{"count": len(complaints), "complaints": complaints})
}

// ReviewComplaint records the manager's decision. A VALID decision triggers
// the employment side effects on the recipient; an INVALID decision warns
// the filer for wasting review time.
func ReviewComplaint(c *gin.Context) {
	var complaint models.Complaint
	if err := config.DB.First(&complaint, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if complaint.Status != models.ComplaintPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Complaint has already been reviewed"})
		return
	}

	var req ReviewComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Decision != models.ComplaintValid && req.Decision != models.ComplaintInvalid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Decision must be VALID or INVALID"})
		return
	}

	// The recipient may have been fired since filing, for example by the
	// review of a different complaint. Guard before persisting the decision
	// so a VALID verdict never lands without its side effects.
	var employee *models.Employee
	if req.Decision == models.ComplaintValid {
		var emp models.Employee
		if err := config.DB.Where("user_id = ?", complaint.RecipientID).First(&emp).Error; err == nil {
			if emp.EmploymentStatus == models.EmploymentFired {
				c.JSON(http.StatusConflict, gin.H{"error": "Recipient has already been fired; complaint stays pending"})
				return
			}
			employee = &emp
		}
	}

	now := time.Now()
	if err := config.DB.Model(&complaint).Updates(map[string]interface{}{
		"status":      req.Decision,
		"reviewed_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update complaint"})
		return
	}
	complaint.Status = req.Decision

	if req.Decision == models.ComplaintValid {
		if employee != nil {
			if err := reputation.NewEngine(config.DB).ApplyComplaintSideEffects(employee); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply reputation update"})
				return
			}
		}
	} else if complaint.SenderID != nil {
		// Frivolous complaints cost the filer a warning
		var customer models.Customer
		if err := config.DB.Where("user_id = ?", *complaint.SenderID).First(&customer).Error; err == nil {
			if err := account.NewTracker(config.DB).AddWarning(&customer); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record warning"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Complaint reviewed",
		"complaint": complaint,
	})
}

// GetOrderBids lists all bids for an order so the manager can pick a winner
func GetOrderBids(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	bids, err := bidding.NewEngine(config.DB).ListBids(order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bids"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_id": order.ID, "count": len(bids), "bids": bids})
}

// AssignOrder sets the winning deliverer and moves the order to ASSIGNED
func AssignOrder(c *gin.Context) {
	var order models.Order
	if err := config.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.Status != models.OrderPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Only pending orders can be assigned"})
		return
	}

	var req AssignOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var deliverer models.User
	if err := config.DB.Where("id = ? AND role = ?", req.DelivererID, models.RoleDeliverer).
		First(&deliverer).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Deliverer not found"})
		return
	}

	if err := bidding.NewEngine(config.DB).AssignDeliverer(&order, deliverer.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign deliverer"})
		return
	}
	config.DB.Model(&order).Update("status", models.OrderAssigned)

	c.JSON(http.StatusOK, gin.H{
		"message":      "Order assigned",
		"order_id":     order.ID,
		"deliverer_id": deliverer.ID,
		"status":       models.OrderAssigned,
	})
}

// CreateProduct adds a sellable item. Food requires a chef creator; merch
// has none and never counts toward staff reputation.
func CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type != models.ProductFood && req.Type != models.ProductMerch {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be food or merch"})
		return
	}
	if req.Type == models.ProductFood {
		if req.CreatorID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Food products require a chef creator"})
			return
		}
		var chef models.User
		if err := config.DB.Where("id = ? AND role = ?", *req.CreatorID, models.RoleChef).
			First(&chef).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
			return
		}
	}

	product := models.Product{
		Name:         req.Name,
		Price:        req.Price,
		Type:         req.Type,
		CreatorID:    req.CreatorID,
		VIPExclusive: req.VIPExclusive,
		IsAvailable:  true,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// GetAllUsers returns all users, optionally filtered by role or status
func GetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}
