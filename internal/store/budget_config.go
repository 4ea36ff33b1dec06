package store

import (
	"time"

	"github.com/WatsonMulkey/The-Number/internal/budget"
)

// Setting keys for the budget configuration.
const (
	KeyBudgetMode        = "budget_mode"
	KeyMonthlyIncome     = "monthly_income"
	KeyDaysUntilPaycheck = "days_until_paycheck"
	KeyTotalMoney        = "total_money"
	KeyTargetEndDate     = "target_end_date"
	KeyDailySpendLimit   = "daily_spending_limit"
	KeyTimezone          = "timezone"
	KeyOnboarded         = "onboarded"
)

// LoadBudgetConfig reads the stored settings and rebuilds the tagged
// budget configuration. Returns ok=false when no mode has been
// configured yet. A stored fixed pool config carrying both a target
// date and a daily cap is rejected instead of silently preferring one.
func (s *SettingsStore) LoadBudgetConfig(userID uint) (budget.Config, bool, error) {
	var mode string
	found, err := s.Get(userID, KeyBudgetMode, &mode)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	switch budget.Mode(mode) {
	case budget.ModePaycheck:
		var income float64
		var days int
		if _, err := s.Get(userID, KeyMonthlyIncome, &income); err != nil {
			return nil, false, err
		}
		if _, err := s.Get(userID, KeyDaysUntilPaycheck, &days); err != nil {
			return nil, false, err
		}
		return budget.Paycheck{MonthlyIncome: income, DaysUntilPaycheck: days}, true, nil

	case budget.ModeFixedPool:
		var pool float64
		if _, err := s.Get(userID, KeyTotalMoney, &pool); err != nil {
			return nil, false, err
		}

		var targetStr string
		hasTarget, err := s.Get(userID, KeyTargetEndDate, &targetStr)
		if err != nil {
			return nil, false, err
		}
		var capAmount float64
		hasCap, err := s.Get(userID, KeyDailySpendLimit, &capAmount)
		if err != nil {
			return nil, false, err
		}

		if hasTarget && hasCap {
			return nil, false, &budget.ValidationError{
				Field:  "budget_mode",
				Reason: "both target_end_date and daily_spending_limit are set; remove one",
			}
		}

		cfg := budget.FixedPool{TotalMoney: pool}
		if hasTarget {
			target, err := time.Parse(time.RFC3339, targetStr)
			if err != nil {
				return nil, false, &budget.ValidationError{
					Field:  KeyTargetEndDate,
					Reason: "stored value is not a valid timestamp",
				}
			}
			cfg.Refinement = budget.TargetDate{Date: target}
		} else if hasCap {
			cfg.Refinement = budget.DailyCap{Amount: capAmount}
		}
		return cfg, true, nil

	default:
		return nil, false, &budget.ValidationError{
			Field:  KeyBudgetMode,
			Reason: "unknown mode " + mode,
		}
	}
}

// SaveBudgetConfig persists the configuration, clearing any keys that
// belong to the other mode or an unused refinement so a later load
// cannot see a stale mix.
func (s *SettingsStore) SaveBudgetConfig(userID uint, cfg budget.Config) error {
	switch c := cfg.(type) {
	case budget.Paycheck:
		if err := s.Set(userID, KeyMonthlyIncome, c.MonthlyIncome); err != nil {
			return err
		}
		if err := s.Set(userID, KeyDaysUntilPaycheck, c.DaysUntilPaycheck); err != nil {
			return err
		}
		for _, key := range []string{KeyTotalMoney, KeyTargetEndDate, KeyDailySpendLimit} {
			if err := s.Delete(userID, key); err != nil {
				return err
			}
		}

	case budget.FixedPool:
		if err := s.Set(userID, KeyTotalMoney, c.TotalMoney); err != nil {
			return err
		}
		if err := s.Delete(userID, KeyMonthlyIncome); err != nil {
			return err
		}
		if err := s.Delete(userID, KeyDaysUntilPaycheck); err != nil {
			return err
		}

		switch r := c.Refinement.(type) {
		case budget.TargetDate:
			if err := s.Set(userID, KeyTargetEndDate, r.Date.Format(time.RFC3339)); err != nil {
				return err
			}
			if err := s.Delete(userID, KeyDailySpendLimit); err != nil {
				return err
			}
		case budget.DailyCap:
			if err := s.Set(userID, KeyDailySpendLimit, r.Amount); err != nil {
				return err
			}
			if err := s.Delete(userID, KeyTargetEndDate); err != nil {
				return err
			}
		default:
			if err := s.Delete(userID, KeyTargetEndDate); err != nil {
				return err
			}
			if err := s.Delete(userID, KeyDailySpendLimit); err != nil {
				return err
			}
		}

	default:
		return &budget.ValidationError{Field: "mode", Reason: "unknown budget mode"}
	}

	return s.Set(userID, KeyBudgetMode, string(cfg.Mode()))
}
