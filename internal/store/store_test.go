package store

import (
	"testing"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/budget"
	"github.com/WatsonMulkey/The-Number/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// StoreTestSuite runs every store against a fresh in-memory database.
type StoreTestSuite struct {
	suite.Suite
	db     *gorm.DB
	userID uint

	settings *SettingsStore
	expenses *ExpenseStore
	txns     *TransactionStore
	tokens   *ResetTokenStore
	limits   *RateLimitStore
}

func (s *StoreTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err, "open test database")

	err = db.AutoMigrate(
		&models.User{},
		&models.Expense{},
		&models.Transaction{},
		&models.Setting{},
		&models.ResetToken{},
		&models.RateHit{},
	)
	require.NoError(s.T(), err, "migrate test database")

	user := models.User{Username: "tester", PasswordHash: "x"}
	require.NoError(s.T(), db.Create(&user).Error)

	s.db = db
	s.userID = user.ID
	s.settings = NewSettingsStore(db, "test-key")
	s.expenses = NewExpenseStore(db)
	s.txns = NewTransactionStore(db)
	s.tokens = NewResetTokenStore(db, time.Hour)
	s.limits = NewRateLimitStore(db)
}

// ============ settings ============

func (s *StoreTestSuite) TestSettingsSetGet() {
	require.NoError(s.T(), s.settings.Set(s.userID, "timezone", "America/Denver"))

	var tz string
	found, err := s.settings.Get(s.userID, "timezone", &tz)
	require.NoError(s.T(), err)
	assert.True(s.T(), found)
	assert.Equal(s.T(), "America/Denver", tz)

	// overwrite
	require.NoError(s.T(), s.settings.Set(s.userID, "timezone", "UTC"))
	_, err = s.settings.Get(s.userID, "timezone", &tz)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "UTC", tz)
}

func (s *StoreTestSuite) TestSettingsMissingKey() {
	var out string
	found, err := s.settings.Get(s.userID, "never_set", &out)
	require.NoError(s.T(), err)
	assert.False(s.T(), found)
}

func (s *StoreTestSuite) TestSettingsEncryptedAtRest() {
	require.NoError(s.T(), s.settings.Set(s.userID, "monthly_income", 3000.0))

	var row models.Setting
	require.NoError(s.T(), s.db.Where("user_id = ? AND key = ?", s.userID, "monthly_income").First(&row).Error)
	assert.NotContains(s.T(), row.ValueEnc, "3000", "value stored in the clear")
}

func (s *StoreTestSuite) TestSettingsDelete() {
	require.NoError(s.T(), s.settings.Set(s.userID, "onboarded", true))
	require.NoError(s.T(), s.settings.Delete(s.userID, "onboarded"))

	var out bool
	found, err := s.settings.Get(s.userID, "onboarded", &out)
	require.NoError(s.T(), err)
	assert.False(s.T(), found)

	// deleting again is fine
	require.NoError(s.T(), s.settings.Delete(s.userID, "onboarded"))
}

// ============ budget config ============

func (s *StoreTestSuite) TestBudgetConfigUnset() {
	_, ok, err := s.settings.LoadBudgetConfig(s.userID)
	require.NoError(s.T(), err)
	assert.False(s.T(), ok)
}

func (s *StoreTestSuite) TestBudgetConfigPaycheckRoundTrip() {
	cfg := budget.Paycheck{MonthlyIncome: 3000, DaysUntilPaycheck: 15}
	require.NoError(s.T(), s.settings.SaveBudgetConfig(s.userID, cfg))

	got, ok, err := s.settings.LoadBudgetConfig(s.userID)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), cfg, got)
}

func (s *StoreTestSuite) TestBudgetConfigFixedPoolRoundTrip() {
	target := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	cfg := budget.FixedPool{TotalMoney: 1200, Refinement: budget.TargetDate{Date: target}}
	require.NoError(s.T(), s.settings.SaveBudgetConfig(s.userID, cfg))

	got, ok, err := s.settings.LoadBudgetConfig(s.userID)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)
	fp, isFP := got.(budget.FixedPool)
	require.True(s.T(), isFP)
	assert.Equal(s.T(), 1200.0, fp.TotalMoney)
	td, isTD := fp.Refinement.(budget.TargetDate)
	require.True(s.T(), isTD)
	assert.True(s.T(), td.Date.Equal(target))
}

func (s *StoreTestSuite) TestBudgetConfigModeSwitchClearsOldKeys() {
	require.NoError(s.T(), s.settings.SaveBudgetConfig(s.userID,
		budget.FixedPool{TotalMoney: 900, Refinement: budget.DailyCap{Amount: 30}}))
	require.NoError(s.T(), s.settings.SaveBudgetConfig(s.userID,
		budget.Paycheck{MonthlyIncome: 2500, DaysUntilPaycheck: 10}))

	var leftover float64
	found, err := s.settings.Get(s.userID, KeyTotalMoney, &leftover)
	require.NoError(s.T(), err)
	assert.False(s.T(), found, "total_money should be cleared on mode switch")

	found, err = s.settings.Get(s.userID, KeyDailySpendLimit, &leftover)
	require.NoError(s.T(), err)
	assert.False(s.T(), found, "daily_spending_limit should be cleared on mode switch")
}

func (s *StoreTestSuite) TestBudgetConfigRejectsBothRefinements() {
	// simulate a corrupted store carrying both refinement keys
	require.NoError(s.T(), s.settings.Set(s.userID, KeyBudgetMode, string(budget.ModeFixedPool)))
	require.NoError(s.T(), s.settings.Set(s.userID, KeyTotalMoney, 1000.0))
	require.NoError(s.T(), s.settings.Set(s.userID, KeyTargetEndDate, "2026-10-01T00:00:00Z"))
	require.NoError(s.T(), s.settings.Set(s.userID, KeyDailySpendLimit, 25.0))

	_, _, err := s.settings.LoadBudgetConfig(s.userID)
	require.Error(s.T(), err)
	verr, ok := budget.AsValidation(err)
	require.True(s.T(), ok, "want validation error, got %v", err)
	assert.Equal(s.T(), "budget_mode", verr.Field)
}

// ============ expenses ============

func (s *StoreTestSuite) TestExpenseCreateAndLedger() {
	_, err := s.expenses.Create(s.userID, "Rent", 1500, true)
	require.NoError(s.T(), err)
	_, err = s.expenses.Create(s.userID, "Groceries", 400, false)
	require.NoError(s.T(), err)

	ledger, err := s.expenses.Ledger(s.userID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1900.0, ledger.Total())
	assert.Len(s.T(), ledger.Expenses(), 2)
}

func (s *StoreTestSuite) TestExpenseCreateRejectsInvalid() {
	_, err := s.expenses.Create(s.userID, "  ", 100, false)
	require.Error(s.T(), err)
	verr, ok := budget.AsValidation(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), "name", verr.Field)

	_, err = s.expenses.Create(s.userID, "Rent", -5, false)
	require.Error(s.T(), err)
	verr, ok = budget.AsValidation(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), "amount", verr.Field)
}

func (s *StoreTestSuite) TestExpenseUpdateAndDelete() {
	row, err := s.expenses.Create(s.userID, "Rent", 1500, true)
	require.NoError(s.T(), err)

	updated, found, err := s.expenses.Update(s.userID, row.ID, "Rent + utilities", 1650, true)
	require.NoError(s.T(), err)
	require.True(s.T(), found)
	assert.Equal(s.T(), 1650.0, updated.Amount)

	deleted, err := s.expenses.Delete(s.userID, row.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), deleted)

	deleted, err = s.expenses.Delete(s.userID, row.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), deleted, "second delete should report no match")
}

func (s *StoreTestSuite) TestExpenseOwnershipEnforced() {
	other := models.User{Username: "other", PasswordHash: "x"}
	require.NoError(s.T(), s.db.Create(&other).Error)

	row, err := s.expenses.Create(other.ID, "Their rent", 900, true)
	require.NoError(s.T(), err)

	_, found, err := s.expenses.Get(s.userID, row.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), found, "must not see another user's expense")

	deleted, err := s.expenses.Delete(s.userID, row.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), deleted, "must not delete another user's expense")
}

func (s *StoreTestSuite) TestExpenseReplaceAll() {
	_, err := s.expenses.Create(s.userID, "Old", 100, false)
	require.NoError(s.T(), err)

	err = s.expenses.ReplaceAll(s.userID, []models.Expense{
		{Name: "Rent", Amount: 1500, IsFixed: true},
		{Name: "Phone", Amount: 60, IsFixed: true},
	})
	require.NoError(s.T(), err)

	rows, err := s.expenses.List(s.userID)
	require.NoError(s.T(), err)
	require.Len(s.T(), rows, 2)
	assert.Equal(s.T(), "Rent", rows[0].Name)
}

// ============ transactions ============

func (s *StoreTestSuite) TestTransactionCreateDefaultsDate() {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	row, err := s.txns.Create(s.userID, time.Time{}, 12.50, "Lunch", "", now)
	require.NoError(s.T(), err)
	assert.True(s.T(), row.Date.Equal(now))
}

func (s *StoreTestSuite) TestTransactionSumBetweenExcludesIncome() {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	now := day.Add(12 * time.Hour)

	_, err := s.txns.Create(s.userID, day.Add(9*time.Hour), 20, "Breakfast", "", now)
	require.NoError(s.T(), err)
	_, err = s.txns.Create(s.userID, day.Add(13*time.Hour), 35, "Lunch", "food", now)
	require.NoError(s.T(), err)
	_, err = s.txns.Create(s.userID, day.Add(10*time.Hour), 5000, "Paycheck", models.CategoryIncome, now)
	require.NoError(s.T(), err)
	// outside the window
	_, err = s.txns.Create(s.userID, day.Add(30*time.Hour), 99, "Tomorrow", "", now)
	require.NoError(s.T(), err)

	sum, err := s.txns.SumBetween(s.userID, day, day.Add(24*time.Hour-time.Nanosecond))
	require.NoError(s.T(), err)
	assert.InDelta(s.T(), 55.0, sum, 1e-9)
}

func (s *StoreTestSuite) TestTransactionListNewestFirstWithLimit() {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := s.txns.Create(s.userID, now.Add(time.Duration(i)*time.Hour), 1, "t", "", now)
		require.NoError(s.T(), err)
	}

	rows, err := s.txns.List(s.userID, 3)
	require.NoError(s.T(), err)
	require.Len(s.T(), rows, 3)
	assert.True(s.T(), rows[0].Date.After(rows[1].Date))
}

func (s *StoreTestSuite) TestTransactionCreateRejectsInvalid() {
	now := time.Now()
	_, err := s.txns.Create(s.userID, time.Time{}, 0, "Lunch", "", now)
	require.Error(s.T(), err)
	verr, ok := budget.AsValidation(err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), "amount", verr.Field)

	_, err = s.txns.Create(s.userID, time.Time{}, 10, "", "", now)
	require.Error(s.T(), err)
}

// ============ reset tokens ============

func (s *StoreTestSuite) TestResetTokenLifecycle() {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	token, err := s.tokens.Issue(s.userID, now)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), token)

	userID, ok, err := s.tokens.Verify(token, now.Add(time.Minute))
	require.NoError(s.T(), err)
	require.True(s.T(), ok)
	assert.Equal(s.T(), s.userID, userID)

	require.NoError(s.T(), s.tokens.Consume(token))
	_, ok, err = s.tokens.Verify(token, now.Add(2*time.Minute))
	require.NoError(s.T(), err)
	assert.False(s.T(), ok, "consumed token must not verify")
}

func (s *StoreTestSuite) TestResetTokenExpires() {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	token, err := s.tokens.Issue(s.userID, now)
	require.NoError(s.T(), err)

	_, ok, err := s.tokens.Verify(token, now.Add(2*time.Hour))
	require.NoError(s.T(), err)
	assert.False(s.T(), ok, "expired token must not verify")
}

func (s *StoreTestSuite) TestResetTokenReissueInvalidatesOld() {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	first, err := s.tokens.Issue(s.userID, now)
	require.NoError(s.T(), err)
	second, err := s.tokens.Issue(s.userID, now.Add(time.Minute))
	require.NoError(s.T(), err)

	_, ok, err := s.tokens.Verify(first, now.Add(2*time.Minute))
	require.NoError(s.T(), err)
	assert.False(s.T(), ok, "older token must be dead after reissue")

	_, ok, err = s.tokens.Verify(second, now.Add(2*time.Minute))
	require.NoError(s.T(), err)
	assert.True(s.T(), ok)
}

func (s *StoreTestSuite) TestResetTokenSweep() {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	_, err := s.tokens.Issue(s.userID, now)
	require.NoError(s.T(), err)

	removed, err := s.tokens.SweepExpired(now.Add(2 * time.Hour))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), removed)
}

// ============ rate limits ============

func (s *StoreTestSuite) TestRateLimitWindow() {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		ok, err := s.limits.Allow("1.2.3.4", "password_reset", 3, time.Hour, now.Add(time.Duration(i)*time.Minute))
		require.NoError(s.T(), err)
		assert.True(s.T(), ok, "hit %d should be allowed", i+1)
	}

	ok, err := s.limits.Allow("1.2.3.4", "password_reset", 3, time.Hour, now.Add(4*time.Minute))
	require.NoError(s.T(), err)
	assert.False(s.T(), ok, "fourth hit within window should be blocked")

	// a different IP is unaffected
	ok, err = s.limits.Allow("5.6.7.8", "password_reset", 3, time.Hour, now.Add(4*time.Minute))
	require.NoError(s.T(), err)
	assert.True(s.T(), ok)

	// window slides
	ok, err = s.limits.Allow("1.2.3.4", "password_reset", 3, time.Hour, now.Add(2*time.Hour))
	require.NoError(s.T(), err)
	assert.True(s.T(), ok)
}

func (s *StoreTestSuite) TestRateLimitScopesIndependent() {
	now := time.Now()
	for i := 0; i < 3; i++ {
		_, err := s.limits.Allow("1.2.3.4", "password_reset", 3, time.Hour, now)
		require.NoError(s.T(), err)
	}

	ok, err := s.limits.Allow("1.2.3.4", "login", 3, time.Hour, now)
	require.NoError(s.T(), err)
	assert.True(s.T(), ok, "scopes must not share counters")
}

func (s *StoreTestSuite) TestRateLimitSweep() {
	now := time.Now()
	_, err := s.limits.Allow("1.2.3.4", "login", 10, time.Hour, now.Add(-2*time.Hour))
	require.NoError(s.T(), err)
	_, err = s.limits.Allow("1.2.3.4", "login", 10, time.Hour, now)
	require.NoError(s.T(), err)

	removed, err := s.limits.SweepBefore(now.Add(-time.Hour))
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), removed)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
