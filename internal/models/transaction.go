package models

import "time"

// CategoryIncome marks a transaction as money in rather than spending.
// Income entries never count toward any spending sum.
const CategoryIncome = "income"

// Transaction is a single logged spend (or income entry).
// Date is stored in UTC; the user's timezone decides which civil day
// it belongs to at query time.
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Date        time.Time `gorm:"index;not null"`
	Amount      float64   `gorm:"not null"`
	Description string    `gorm:"size:200;not null"`
	Category    string    `gorm:"size:200"`
	CreatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}

// IsIncome reports whether the entry is tagged as income.
func (t *Transaction) IsIncome() bool {
	return t.Category == CategoryIncome
}
