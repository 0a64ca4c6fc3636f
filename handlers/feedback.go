package handlers

import (
	"net/http"

	"restaurant-ordering-api/config"
	"restaurant-ordering-api/middleware"
	"restaurant-ordering-api/models"
	"restaurant-ordering-api/reputation"

	"github.com/gin-gonic/gin"
)

type FeedbackRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Message     string `json:"message" binding:"required"`
}

// feedbackTarget loads the employee profile behind the feedback recipient
// and guards the fired-employee contract: feedback about a fired employee
// must be rejected before it ever reaches the reputation engine.
func feedbackTarget(c *gin.Context, recipientID uint) (*models.Employee, bool) {
	var user models.User
	if err := config.DB.First(&user, recipientID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		return nil, false
	}
	if user.Role != models.RoleChef && user.Role != models.RoleDeliverer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Feedback can only target chefs and deliverers"})
		return nil, false
	}
	var employee models.Employee
	if err := config.DB.Where("user_id = ?", recipientID).First(&employee).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee profile not found"})
		return nil, false
	}
	if employee.EmploymentStatus == models.EmploymentFired {
		c.JSON(http.StatusConflict, gin.H{"error": "Cannot send feedback about a fired employee"})
		return nil, false
	}
	return &employee, true
}

// FileCompliment records a compliment and immediately applies its
// employment side effects — compliments need no manager review.
func FileCompliment(c *gin.Context) {
	senderID := middleware.GetUserID(c)

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, ok := feedbackTarget(c, req.RecipientID)
	if !ok {
		return
	}

	compliment := models.Compliment{
		SenderID:    &senderID,
		RecipientID: req.RecipientID,
		Message:     req.Message,
	}
	if err := config.DB.Create(&compliment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record compliment"})
		return
	}

	if err := reputation.NewEngine(config.DB).ApplyComplimentSideEffects(employee); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply reputation update"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":           "Compliment submitted",
		"employment_status": employee.EmploymentStatus,
	})
}

// FileComplaint records a complaint as PENDING. Side effects only run once
// a manager marks it valid.
func FileComplaint(c *gin.Context) {
	senderID := middleware.GetUserID(c)

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, ok := feedbackTarget(c, req.RecipientID); !ok {
		return
	}

	complaint := models.Complaint{
		SenderID:    &senderID,
		RecipientID: req.RecipientID,
		Message:     req.Message,
		Status:      models.ComplaintPending,
	}
	if err := config.DB.Create(&complaint).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record complaint"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Complaint submitted. Manager will review it.",
		"complaint": complaint,
	})
}

// GetMyComplaints lists the caller's filed complaints with review status
func GetMyComplaints(c *gin.Context) {
	senderID := middleware.GetUserID(c)
	var complaints []models.Complaint
	config.DB.Preload("Recipient").
		Where("sender_id = ?", senderID).
		Order("created_at desc").
		Find(&complaints)
	c.JSON(http.StatusOK, gin.H{"count": len(complaints), "complaints": complaints})
}
