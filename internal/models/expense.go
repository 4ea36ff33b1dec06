package models

import "time"

// Expense is a recurring monthly cost. IsFixed marks a fixed bill
// (rent, insurance) as opposed to a variable estimate (groceries);
// the flag is informational, both kinds count toward monthly expenses.
type Expense struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Name      string    `gorm:"size:200;not null"`
	Amount    float64   `gorm:"not null"`
	IsFixed   bool      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
