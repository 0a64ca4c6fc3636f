package models

import "time"

// ProductType distinguishes menu items from merchandise. Orders are
// homogeneous: a cart is all food or all merch, never mixed.
type ProductType string

const (
	ProductFood  ProductType = "food"
	ProductMerch ProductType = "merch"
)

type Product struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Name        string      `json:"name" gorm:"not null"`
	Price       int64       `json:"price_cents" gorm:"not null"`
	Type        ProductType `json:"type" gorm:"not null;default:'food'"`
	// CreatorID is the chef's user ID. Required for food; merch has no
	// creator and is excluded from staff reputation.
	CreatorID    *uint     `json:"creator_id"`
	Creator      *User     `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	VIPExclusive bool      `json:"vip_exclusive" gorm:"column:vip_exclusive;not null;default:false"`
	IsAvailable  bool      `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductRating is unique per (product, rater); rating the same product
// twice updates the existing row in place.
type ProductRating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex:idx_product_rater"`
	Product   Product   `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	RaterID   uint      `json:"rater_id" gorm:"not null;uniqueIndex:idx_product_rater"`
	Rating    int       `json:"rating" gorm:"not null"` // 1-5
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
