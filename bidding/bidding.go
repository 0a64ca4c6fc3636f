package bidding

import (
	"errors"
	"fmt"

	"restaurant-ordering-api/models"

	"gorm.io/gorm"
)

// ErrInvalidBid rejects a negative bid amount.
var ErrInvalidBid = errors.New("invalid bid")

// Engine records deliverer bids per order and applies the manager's
// assignment choice. Bids upsert on the (order, deliverer) pair; a nil
// price is an abstention and may overwrite a real price or vice versa.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// PlaceBid upserts the deliverer's bid for the order. price is in cents;
// nil abstains.
func (e *Engine) PlaceBid(orderID, delivererID uint, price *int64) (*models.Bid, error) {
	if price != nil && *price < 0 {
		return nil, fmt.Errorf("%w: negative amount %d", ErrInvalidBid, *price)
	}

	if err := e.db.First(&models.Order{}, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", models.ErrNotFound, orderID)
		}
		return nil, err
	}

	var bid models.Bid
	err := e.db.Where("order_id = ? AND deliverer_id = ?", orderID, delivererID).First(&bid).Error
	switch {
	case err == nil:
		if err := e.db.Model(&bid).Update("price", price).Error; err != nil {
			return nil, err
		}
		bid.Price = price
		return &bid, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		bid = models.Bid{OrderID: orderID, DelivererID: delivererID, Price: price}
		if err := e.db.Create(&bid).Error; err != nil {
			return nil, err
		}
		return &bid, nil
	default:
		return nil, err
	}
}

// ListBids returns all bids for the order in stable insertion order. Display
// ordering is the host application's concern.
func (e *Engine) ListBids(orderID uint) ([]models.Bid, error) {
	var bids []models.Bid
	err := e.db.Preload("Deliverer").
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&bids).Error
	return bids, err
}

// AssignDeliverer records the manager's pick from the bid set. The order
// status transition is left to the host application.
func (e *Engine) AssignDeliverer(order *models.Order, delivererID uint) error {
	if err := e.db.Model(order).Update("assigned_deliverer_id", delivererID).Error; err != nil {
		return err
	}
	order.AssignedDelivererID = &delivererID
	return nil
}
