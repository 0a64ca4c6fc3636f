package settlement

import (
	"errors"
	"fmt"

	"restaurant-ordering-api/account"
	"restaurant-ordering-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrInvalidOrder rejects an empty cart, an unrecognized order type,
	// or a non-positive computed total.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrInsufficientBalance rejects a charge exceeding the customer's
	// balance. The caller is expected to escalate a warning on this path.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

const vipDiscountPercent = 5

// LineItem is one (product, quantity) entry of a cart submission.
type LineItem struct {
	Product  *models.Product
	Quantity int
}

// Engine settles carts: it totals line items, applies the VIP discount,
// charges the customer's balance, and creates the order atomically. The cart
// must be homogeneous — the HTTP caller rejects mixed food/merch carts
// before invoking the engine.
type Engine struct {
	db       *gorm.DB
	accounts *account.Tracker
}

func NewEngine(db *gorm.DB, accounts *account.Tracker) *Engine {
	return &Engine{db: db, accounts: accounts}
}

// PlaceOrder charges the customer and creates the order with its line items
// as one transaction, then re-evaluates VIP eligibility. Line items persist
// at full price; the VIP discount of 5% (integer floor on cents) applies to
// the order total only. Nil products and non-positive quantities are
// silently skipped.
func (e *Engine) PlaceOrder(customer *models.Customer, items []LineItem, orderType models.ProductType) (*models.Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty cart", ErrInvalidOrder)
	}
	if orderType != models.ProductFood && orderType != models.ProductMerch {
		return nil, fmt.Errorf("%w: unrecognized order type %q", ErrInvalidOrder, orderType)
	}

	var total int64
	var rows []models.OrderItem
	for _, li := range items {
		if li.Product == nil || li.Quantity <= 0 {
			continue
		}
		cost := li.Product.Price * int64(li.Quantity)
		total += cost
		rows = append(rows, models.OrderItem{
			ProductID: li.Product.ID,
			Quantity:  li.Quantity,
			UnitPrice: li.Product.Price,
			TotalCost: cost,
		})
	}

	charge := total
	if customer.VIP {
		charge = total - total*vipDiscountPercent/100
	}
	if charge <= 0 {
		return nil, fmt.Errorf("%w: computed total is not positive", ErrInvalidOrder)
	}
	if customer.Balance < charge {
		return nil, fmt.Errorf("%w: charge %d exceeds balance %d", ErrInsufficientBalance, charge, customer.Balance)
	}

	order := &models.Order{
		Reference:  uuid.NewString(),
		CustomerID: &customer.ID,
		Status:     models.OrderPending,
		OrderType:  orderType,
		Total:      charge,
		Items:      rows,
	}
	newBalance := customer.Balance - charge

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Model(customer).Update("balance", newBalance).Error
	})
	if err != nil {
		return nil, err
	}
	customer.Balance = newBalance

	// The order and charge are committed at this point; a failed VIP
	// recheck returns the order alongside the error so callers never
	// mistake it for a failed settlement.
	if err := e.accounts.ReevaluateVIP(customer); err != nil {
		return order, err
	}
	return order, nil
}
