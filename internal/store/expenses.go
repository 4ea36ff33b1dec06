package store

import (
	"fmt"

	"github.com/WatsonMulkey/The-Number/internal/budget"
	"github.com/WatsonMulkey/The-Number/internal/models"

	"gorm.io/gorm"
)

// ExpenseStore persists recurring monthly expenses.
type ExpenseStore struct {
	DB *gorm.DB
}

func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{DB: db}
}

// Create validates and stores an expense, returning the saved row.
// Validation failures come back as *budget.ValidationError.
func (s *ExpenseStore) Create(userID uint, name string, amount float64, fixed bool) (*models.Expense, error) {
	exp, err := budget.NewExpense(name, amount, fixed)
	if err != nil {
		return nil, err
	}

	row := models.Expense{
		UserID:  userID,
		Name:    exp.Name,
		Amount:  exp.Amount,
		IsFixed: fixed,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &row, nil
}

// List returns the user's expenses, oldest first.
func (s *ExpenseStore) List(userID uint) ([]models.Expense, error) {
	var rows []models.Expense
	if err := s.DB.Where("user_id = ?", userID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return rows, nil
}

// Get returns one expense owned by the user, or false when it does not
// exist or belongs to someone else.
func (s *ExpenseStore) Get(userID, id uint) (*models.Expense, bool, error) {
	var row models.Expense
	err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup expense: %w", err)
	}
	return &row, true, nil
}

// Update validates and rewrites name/amount/fixed on an existing row.
func (s *ExpenseStore) Update(userID, id uint, name string, amount float64, fixed bool) (*models.Expense, bool, error) {
	row, found, err := s.Get(userID, id)
	if err != nil || !found {
		return nil, found, err
	}

	exp, err := budget.NewExpense(name, amount, fixed)
	if err != nil {
		return nil, true, err
	}

	row.Name = exp.Name
	row.Amount = exp.Amount
	row.IsFixed = fixed
	if err := s.DB.Save(row).Error; err != nil {
		return nil, true, fmt.Errorf("update expense: %w", err)
	}
	return row, true, nil
}

// Delete removes one expense; returns false when nothing matched.
func (s *ExpenseStore) Delete(userID, id uint) (bool, error) {
	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return false, fmt.Errorf("delete expense: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ReplaceAll wipes the user's expenses and inserts the given set in one
// transaction, used by imports and restores.
func (s *ExpenseStore) ReplaceAll(userID uint, expenses []models.Expense) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Expense{}).Error; err != nil {
			return fmt.Errorf("clear expenses: %w", err)
		}
		for i := range expenses {
			row := models.Expense{
				UserID:  userID,
				Name:    expenses[i].Name,
				Amount:  expenses[i].Amount,
				IsFixed: expenses[i].IsFixed,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert expense: %w", err)
			}
		}
		return nil
	})
}

// Ledger builds the in-memory ledger the engine consumes.
func (s *ExpenseStore) Ledger(userID uint) (*budget.Ledger, error) {
	rows, err := s.List(userID)
	if err != nil {
		return nil, err
	}

	ledger := &budget.Ledger{}
	for i := range rows {
		if err := ledger.Add(rows[i].Name, rows[i].Amount, rows[i].IsFixed); err != nil {
			return nil, fmt.Errorf("expense %d: %w", rows[i].ID, err)
		}
	}
	return ledger, nil
}
