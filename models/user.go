package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a referenced entity does not exist at call time.
var ErrNotFound = errors.New("not found")

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer  UserRole = "customer"
	RoleDeliverer UserRole = "deliverer"
	RoleChef      UserRole = "chef"
	RoleManager   UserRole = "manager"
)

// AccountStatus tracks the account lifecycle: registration creates a PENDING
// account, manager approval activates it, the standing rules may suspend it,
// and a manager "forgive" reactivates it.
type AccountStatus string

const (
	AccountPending   AccountStatus = "PENDING"
	AccountActive    AccountStatus = "ACTIVE"
	AccountSuspended AccountStatus = "SUSPENDED"
)

type User struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name" gorm:"uniqueIndex;not null"`
	Email        string        `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string        `json:"-" gorm:"not null"`
	Role         UserRole      `json:"role" gorm:"not null;default:'customer'"`
	Status       AccountStatus `json:"status" gorm:"not null;default:'PENDING'"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
