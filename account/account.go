package account

import (
	"restaurant-ordering-api/models"

	"gorm.io/gorm"
)

// VIP promotion thresholds: 3 lifetime orders or $100 spent, with a clean
// valid-complaint history.
const (
	vipOrderThreshold = 3
	vipSpendThreshold = 10000 // cents

	suspendWarningLimit = 3 // non-VIP: account suspended at exactly 3 warnings
	vipWarningLimit     = 2 // VIP: warnings reset and VIP revoked at exactly 2
)

// Tracker maintains customer standing: warning accumulation with the
// VIP/non-VIP escalation split, and post-order VIP eligibility.
type Tracker struct {
	db *gorm.DB
}

func NewTracker(db *gorm.DB) *Tracker {
	return &Tracker{db: db}
}

// AddWarning increments the customer's warning count and escalates on the
// boundary. A non-VIP reaching exactly 3 warnings has the account suspended
// (warnings kept). A VIP reaching exactly 2 gets the warnings wiped and the
// VIP flag revoked instead: earned leniency buys a reset, not a suspension.
func (t *Tracker) AddWarning(c *models.Customer) error {
	warnings := c.Warnings + 1

	if c.VIP && warnings == vipWarningLimit {
		if err := t.db.Model(c).Updates(map[string]interface{}{
			"warnings": 0,
			"vip":      false,
		}).Error; err != nil {
			return err
		}
		c.Warnings = 0
		c.VIP = false
		return nil
	}

	if !c.VIP && warnings == suspendWarningLimit {
		err := t.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(c).Update("warnings", warnings).Error; err != nil {
				return err
			}
			return tx.Model(&models.User{}).
				Where("id = ?", c.UserID).
				Update("status", models.AccountSuspended).Error
		})
		if err != nil {
			return err
		}
		c.Warnings = warnings
		return nil
	}

	if err := t.db.Model(c).Update("warnings", warnings).Error; err != nil {
		return err
	}
	c.Warnings = warnings
	return nil
}

// ReevaluateVIP runs after every successful order while the customer is not
// already VIP. Any valid complaint against the customer blocks promotion;
// otherwise 3 lifetime orders or 10000 cents of lifetime line-item spend
// earn the flag.
func (t *Tracker) ReevaluateVIP(c *models.Customer) error {
	if c.VIP {
		return nil
	}

	var validComplaints int64
	if err := t.db.Model(&models.Complaint{}).
		Where("recipient_id = ? AND status = ?", c.UserID, models.ComplaintValid).
		Count(&validComplaints).Error; err != nil {
		return err
	}
	if validComplaints > 0 {
		return nil
	}

	var orderCount int64
	if err := t.db.Model(&models.Order{}).
		Where("customer_id = ?", c.ID).
		Count(&orderCount).Error; err != nil {
		return err
	}

	var totalSpent int64
	if err := t.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.customer_id = ?", c.ID).
		Select("coalesce(sum(order_items.total_cost), 0)").
		Scan(&totalSpent).Error; err != nil {
		return err
	}

	if orderCount >= vipOrderThreshold || totalSpent >= vipSpendThreshold {
		if err := t.db.Model(c).Update("vip", true).Error; err != nil {
			return err
		}
		c.VIP = true
	}
	return nil
}
