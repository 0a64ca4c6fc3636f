package models

import "time"

// ComplaintStatus is set by manager review. Only VALID complaints count
// toward an employee's reputation score.
type ComplaintStatus string

const (
	ComplaintPending ComplaintStatus = "PENDING"
	ComplaintValid   ComplaintStatus = "VALID"
	ComplaintInvalid ComplaintStatus = "INVALID"
)

// Compliment is a directed sender → recipient message. Every compliment
// counts toward reputation; VIP-authored ones count double.
type Compliment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SenderID    *uint     `json:"sender_id"`
	Sender      *User     `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	RecipientID uint      `json:"recipient_id" gorm:"not null"`
	Recipient   User      `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	Message     string    `json:"message" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// Complaint is a directed sender → recipient message that stays PENDING
// until a manager marks it VALID or INVALID.
type Complaint struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SenderID    *uint           `json:"sender_id"`
	Sender      *User           `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	RecipientID uint            `json:"recipient_id" gorm:"not null"`
	Recipient   User            `json:"recipient,omitempty" gorm:"foreignKey:RecipientID"`
	Message     string          `json:"message" gorm:"not null"`
	Status      ComplaintStatus `json:"status" gorm:"not null;default:'PENDING'"`
	ReviewedAt  *time.Time      `json:"reviewed_at"`
	CreatedAt   time.Time       `json:"created_at"`
}
