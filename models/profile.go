package models

import "time"

// EmploymentStatus represents all possible states of a worker's employment.
// It is driven exclusively by the reputation rules: compliments can promote
// or recover a worker, valid complaints can demote or fire them.
type EmploymentStatus string

const (
	EmploymentOkay     EmploymentStatus = "OKAY"
	EmploymentPromoted EmploymentStatus = "PROMOTED"
	EmploymentDemoted  EmploymentStatus = "DEMOTED"
	EmploymentWarned   EmploymentStatus = "WARNED"
	EmploymentFired    EmploymentStatus = "FIRED"
)

// Customer is the role profile for users with RoleCustomer, created when a
// manager approves the registration. Balance is integer cents and never goes
// negative as a result of an order.
type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Warnings  int       `json:"warnings" gorm:"not null;default:0"`
	Balance   int64     `json:"balance_cents" gorm:"not null;default:0"`
	VIP       bool      `json:"vip" gorm:"column:vip;not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Employee is the shared role profile for chefs and deliverers (the user row
// carries the role tag). All amounts are integer cents; Salary is cents/hour,
// Bonus is the fixed amount awarded on promotion, Demotion is the salary
// delta applied when demoted or recovered.
type Employee struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	UserID           uint             `json:"user_id" gorm:"uniqueIndex;not null"`
	User             User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Balance          int64            `json:"balance_cents" gorm:"not null;default:0"`
	Salary           int64            `json:"salary_cents" gorm:"not null"`
	Bonus            int64            `json:"bonus_cents" gorm:"not null"`
	Demotion         int64            `json:"demotion_cents" gorm:"not null"`
	EmploymentStatus EmploymentStatus `json:"employment_status" gorm:"not null;default:'OKAY'"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// Manager is the role profile for users with RoleManager.
type Manager struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
}
