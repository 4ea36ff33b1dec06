// Package budget is the calculation core of The Number: it turns a
// budget configuration, recurring expenses and today's spending into a
// daily spending limit. Everything here is a pure function of its
// inputs; callers supply "now" explicitly so results are deterministic.
package budget

import (
	"fmt"
	"strings"
	"time"
)

// Validation bounds shared across the engine and the storage layer.
const (
	// MaxAmount is the largest accepted dollar amount ($10 million).
	MaxAmount = 10_000_000
	// MaxNameLength bounds expense names and transaction descriptions.
	MaxNameLength = 200
	// MaxDaysUntilPaycheck caps paycheck mode at one year out.
	MaxDaysUntilPaycheck = 365
	// DaysPerMonth is the uniform month approximation used throughout.
	// Deliberately not calendar-accurate.
	DaysPerMonth = 30
)

// Expense is one recurring monthly cost. Fixed marks a set bill as
// opposed to a variable estimate; both count the same in the math.
type Expense struct {
	Name   string
	Amount float64
	Fixed  bool
}

// NewExpense validates and builds an expense value.
func NewExpense(name string, amount float64, fixed bool) (Expense, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Expense{}, invalid("name", "is required")
	}
	if len(name) > MaxNameLength {
		return Expense{}, invalid("name", fmt.Sprintf("too long (max %d characters)", MaxNameLength))
	}
	if amount < 0 {
		return Expense{}, invalid("amount", "cannot be negative")
	}
	if amount > MaxAmount {
		return Expense{}, invalid("amount", fmt.Sprintf("exceeds maximum ($%d)", MaxAmount))
	}
	return Expense{Name: name, Amount: amount, Fixed: fixed}, nil
}

// Ledger accumulates the expenses for one calculation.
type Ledger struct {
	expenses []Expense
}

// Add validates the expense and appends it.
func (l *Ledger) Add(name string, amount float64, fixed bool) error {
	e, err := NewExpense(name, amount, fixed)
	if err != nil {
		return err
	}
	l.expenses = append(l.expenses, e)
	return nil
}

// Total returns the sum of all expense amounts; 0 for an empty ledger.
func (l *Ledger) Total() float64 {
	var sum float64
	for _, e := range l.expenses {
		sum += e.Amount
	}
	return sum
}

// Expenses returns a copy of the accumulated expenses.
func (l *Ledger) Expenses() []Expense {
	out := make([]Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Transaction is one logged spend (or income entry) as seen by the
// aggregator. Date must carry the instant in UTC.
type Transaction struct {
	Date        time.Time
	Amount      float64
	Description string
	Category    string
}

// NewTransaction validates and builds a transaction value. A zero date
// is replaced with now.
func NewTransaction(date time.Time, amount float64, description, category string, now time.Time) (Transaction, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Transaction{}, invalid("description", "is required")
	}
	if len(description) > MaxNameLength {
		return Transaction{}, invalid("description", fmt.Sprintf("too long (max %d characters)", MaxNameLength))
	}
	if amount <= 0 {
		return Transaction{}, invalid("amount", "must be positive")
	}
	if amount > MaxAmount {
		return Transaction{}, invalid("amount", fmt.Sprintf("exceeds maximum ($%d)", MaxAmount))
	}
	if len(category) > MaxNameLength {
		return Transaction{}, invalid("category", fmt.Sprintf("too long (max %d characters)", MaxNameLength))
	}
	if date.IsZero() {
		date = now
	}
	return Transaction{
		Date:        date.UTC(),
		Amount:      amount,
		Description: description,
		Category:    category,
	}, nil
}

// IsIncome reports whether the entry is tagged as income and therefore
// excluded from all spending sums.
func (t Transaction) IsIncome() bool {
	return t.Category == "income"
}
