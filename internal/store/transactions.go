package store

import (
	"fmt"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/budget"
	"github.com/WatsonMulkey/The-Number/internal/models"

	"gorm.io/gorm"
)

// TransactionStore persists the spending log.
type TransactionStore struct {
	DB *gorm.DB
}

func NewTransactionStore(db *gorm.DB) *TransactionStore {
	return &TransactionStore{DB: db}
}

// Create validates and stores a transaction. A zero date defaults to
// now; dates are stored in UTC.
func (s *TransactionStore) Create(userID uint, date time.Time, amount float64, description, category string, now time.Time) (*models.Transaction, error) {
	txn, err := budget.NewTransaction(date, amount, description, category, now)
	if err != nil {
		return nil, err
	}

	row := models.Transaction{
		UserID:      userID,
		Date:        txn.Date,
		Amount:      txn.Amount,
		Description: txn.Description,
		Category:    txn.Category,
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return &row, nil
}

// List returns the user's transactions newest first, capped at limit
// (0 means no cap).
func (s *TransactionStore) List(userID uint, limit int) ([]models.Transaction, error) {
	q := s.DB.Where("user_id = ?", userID).Order("date desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []models.Transaction
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return rows, nil
}

// ListBetween returns transactions with start <= date <= end, oldest
// first.
func (s *TransactionStore) ListBetween(userID uint, start, end time.Time) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.DB.Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date asc, id asc").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return rows, nil
}

// SumBetween sums spending inside [start, end]. The filtering rules
// (income excluded, bounds inclusive) live in the budget package so the
// API and the CLI cannot drift apart.
func (s *TransactionStore) SumBetween(userID uint, start, end time.Time) (float64, error) {
	rows, err := s.ListBetween(userID, start, end)
	if err != nil {
		return 0, err
	}
	return budget.SumForRange(toBudgetTxns(rows), start, end), nil
}

// Delete removes one transaction; returns false when nothing matched.
func (s *TransactionStore) Delete(userID, id uint) (bool, error) {
	res := s.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{})
	if res.Error != nil {
		return false, fmt.Errorf("delete transaction: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ReplaceAll wipes the user's transactions and inserts the given set in
// one transaction, used by restores.
func (s *TransactionStore) ReplaceAll(userID uint, txns []models.Transaction) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Transaction{}).Error; err != nil {
			return fmt.Errorf("clear transactions: %w", err)
		}
		for i := range txns {
			row := models.Transaction{
				UserID:      userID,
				Date:        txns[i].Date.UTC(),
				Amount:      txns[i].Amount,
				Description: txns[i].Description,
				Category:    txns[i].Category,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert transaction: %w", err)
			}
		}
		return nil
	})
}

func toBudgetTxns(rows []models.Transaction) []budget.Transaction {
	out := make([]budget.Transaction, len(rows))
	for i := range rows {
		out[i] = budget.Transaction{
			Date:        rows[i].Date,
			Amount:      rows[i].Amount,
			Description: rows[i].Description,
			Category:    rows[i].Category,
		}
	}
	return out
}
