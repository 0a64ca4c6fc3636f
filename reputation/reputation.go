package reputation

import (
	"database/sql"

	"restaurant-ordering-api/models"
	"restaurant-ordering-api/statemachine"

	"gorm.io/gorm"
)

// Engine evaluates worker reputation and applies the employment side
// effects of compliments and valid complaints. All score inputs come from
// aggregate queries over the feedback log; the engine never caches.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Score returns good + good_vip - bad - bad_vip for the given employee's
// user ID. VIP-authored feedback counts once in the base count and once in
// the vip bonus/penalty: VIP opinions deliberately weigh double.
func (e *Engine) Score(employeeUserID uint) (int, error) {
	var good, bad, goodVIP, badVIP int64

	if err := e.db.Model(&models.Compliment{}).
		Where("recipient_id = ?", employeeUserID).
		Count(&good).Error; err != nil {
		return 0, err
	}
	if err := e.db.Model(&models.Complaint{}).
		Where("recipient_id = ? AND status = ?", employeeUserID, models.ComplaintValid).
		Count(&bad).Error; err != nil {
		return 0, err
	}
	if err := e.db.Model(&models.Compliment{}).
		Joins("JOIN customers ON customers.user_id = compliments.sender_id").
		Where("compliments.recipient_id = ? AND customers.vip = ?", employeeUserID, true).
		Count(&goodVIP).Error; err != nil {
		return 0, err
	}
	if err := e.db.Model(&models.Complaint{}).
		Joins("JOIN customers ON customers.user_id = complaints.sender_id").
		Where("complaints.recipient_id = ? AND complaints.status = ? AND customers.vip = ?",
			employeeUserID, models.ComplaintValid, true).
		Count(&badVIP).Error; err != nil {
		return 0, err
	}

	return int(good + goodVIP - bad - badVIP), nil
}

// AverageRating returns the mean product rating attributable to the
// employee, and false when no rating exists — an unrated worker has no
// average, not a zero one. Chefs are rated through the food products they
// created; deliverers through ratings of products on delivered orders
// assigned to them. Merch never counts toward staff reputation.
func (e *Engine) AverageRating(employeeUserID uint, role models.UserRole) (float64, bool, error) {
	var avg sql.NullFloat64

	switch role {
	case models.RoleChef:
		err := e.db.Model(&models.ProductRating{}).
			Joins("JOIN products ON products.id = product_ratings.product_id").
			Where("products.creator_id = ? AND products.type = ?", employeeUserID, models.ProductFood).
			Select("avg(product_ratings.rating)").
			Scan(&avg).Error
		if err != nil {
			return 0, false, err
		}
	case models.RoleDeliverer:
		// Membership subquery, not a join: a product appearing on several
		// of the deliverer's delivered orders still counts each rating once.
		delivered := e.db.Model(&models.OrderItem{}).
			Select("order_items.product_id").
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.assigned_deliverer_id = ? AND orders.status = ?", employeeUserID, models.OrderDelivered)
		err := e.db.Model(&models.ProductRating{}).
			Where("product_ratings.product_id IN (?)", delivered).
			Select("avg(product_ratings.rating)").
			Scan(&avg).Error
		if err != nil {
			return 0, false, err
		}
	default:
		return 0, false, nil
	}

	if !avg.Valid {
		return 0, false, nil
	}
	return avg.Float64, true, nil
}

// ApplyComplimentSideEffects re-evaluates employment status after a new
// compliment has been recorded for this employee. Status and salary are
// persisted together in a single write.
func (e *Engine) ApplyComplimentSideEffects(emp *models.Employee) error {
	score, err := e.Score(emp.UserID)
	if err != nil {
		return err
	}
	out, err := statemachine.OnCompliment(emp.EmploymentStatus, score, emp.Bonus, emp.Demotion)
	if err != nil {
		return err
	}
	return e.persistOutcome(emp, out)
}

// ApplyComplaintSideEffects re-evaluates employment status after a manager
// marks a complaint against this employee valid. A Warned employee whose
// score has sunk to -3 is fired through SuspendForFiring so the account
// suspension lands in the same transaction.
func (e *Engine) ApplyComplaintSideEffects(emp *models.Employee) error {
	score, err := e.Score(emp.UserID)
	if err != nil {
		return err
	}
	out, err := statemachine.OnValidComplaint(emp.EmploymentStatus, score, emp.Bonus, emp.Demotion)
	if err != nil {
		return err
	}
	if out.Status == models.EmploymentFired {
		return e.SuspendForFiring(emp)
	}
	return e.persistOutcome(emp, out)
}

// SuspendForFiring fires the employee and suspends the underlying user
// account as one logical unit. A fired employee with an active account, or
// the reverse, must never be observable.
func (e *Engine) SuspendForFiring(emp *models.Employee) error {
	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(emp).Update("employment_status", models.EmploymentFired).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", emp.UserID).
			Update("status", models.AccountSuspended).Error
	})
	if err != nil {
		return err
	}
	emp.EmploymentStatus = models.EmploymentFired
	return nil
}

func (e *Engine) persistOutcome(emp *models.Employee, out statemachine.Outcome) error {
	if out.Status == emp.EmploymentStatus && out.SalaryDelta == 0 {
		return nil
	}
	newSalary := emp.Salary + out.SalaryDelta
	if err := e.db.Model(emp).Updates(map[string]interface{}{
		"employment_status": out.Status,
		"salary":            newSalary,
	}).Error; err != nil {
		return err
	}
	emp.EmploymentStatus = out.Status
	emp.Salary = newSalary
	return nil
}
