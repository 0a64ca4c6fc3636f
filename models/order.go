package models

import "time"

// OrderStatus represents the delivery lifecycle of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderAssigned  OrderStatus = "ASSIGNED"
	OrderDelivered OrderStatus = "DELIVERED"
)

type Order struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Reference string `json:"reference" gorm:"uniqueIndex;not null"`
	// CustomerID is nullable only transiently during creation.
	CustomerID *uint       `json:"customer_id"`
	Customer   *Customer   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Status     OrderStatus `json:"status" gorm:"not null;default:'PENDING'"`
	OrderType  ProductType `json:"order_type" gorm:"not null"`
	// Total is the amount actually charged, after any VIP discount.
	// Immutable once the order is created.
	Total               int64       `json:"total_cents" gorm:"not null"`
	AssignedDelivererID *uint       `json:"assigned_deliverer_id"`
	AssignedDeliverer   *User       `json:"assigned_deliverer,omitempty" gorm:"foreignKey:AssignedDelivererID"`
	Items               []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// OrderItem is one (product, quantity) line of an order. UnitPrice and
// TotalCost are snapshots at full price: the VIP discount applies to the
// order total only, never to individual lines.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id" gorm:"not null"`
	ProductID uint    `json:"product_id" gorm:"not null"`
	Product   Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice int64   `json:"unit_price_cents" gorm:"not null"`
	TotalCost int64   `json:"total_cost_cents" gorm:"not null"`
}

// Bid is a deliverer's offer to deliver an order, unique per
// (order, deliverer). A nil Price is an abstention: the deliverer has
// explicitly declined rather than not answered.
type Bid struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OrderID     uint      `json:"order_id" gorm:"not null;uniqueIndex:idx_order_deliverer"`
	DelivererID uint      `json:"deliverer_id" gorm:"not null;uniqueIndex:idx_order_deliverer"`
	Deliverer   User      `json:"deliverer,omitempty" gorm:"foreignKey:DelivererID"`
	Price       *int64    `json:"price_cents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
