package budget

import (
	"fmt"
	"math"
	"time"
)

// Mode selects the budgeting style.
type Mode string

const (
	// ModePaycheck budgets a recurring income across the days until
	// the next payday.
	ModePaycheck Mode = "paycheck"
	// ModeFixedPool stretches a single lump sum over a period.
	ModeFixedPool Mode = "fixed_pool"
)

// Calculation sub-modes reported for fixed pool results.
const (
	CalcTargetDate    = "target_date"
	CalcDailyLimit    = "daily_limit"
	CalcExpensesBased = "expenses_based"
)

// Config is the tagged budget configuration: exactly one mode is
// active, and each mode carries only the fields it needs.
type Config interface {
	Mode() Mode
}

// Paycheck configures paycheck mode.
type Paycheck struct {
	MonthlyIncome     float64
	DaysUntilPaycheck int
}

// Mode implements Config.
func (Paycheck) Mode() Mode { return ModePaycheck }

// Refinement narrows fixed pool mode. A nil refinement means the
// runway is derived purely from expenses.
type Refinement interface {
	calcMode() string
}

// TargetDate makes the pool last until a specific date.
type TargetDate struct {
	Date time.Time
}

func (TargetDate) calcMode() string { return CalcTargetDate }

// DailyCap spends a fixed amount per day until the pool runs out.
type DailyCap struct {
	Amount float64
}

func (DailyCap) calcMode() string { return CalcDailyLimit }

// FixedPool configures fixed pool mode.
type FixedPool struct {
	TotalMoney float64
	Refinement Refinement
}

// Mode implements Config.
func (FixedPool) Mode() Mode { return ModeFixedPool }

// Result is the outcome of one calculation. DailyLimit, Mode and
// TotalExpenses are always present; exactly one of Paycheck/FixedPool
// is set depending on the mode, and callers must not assume fields of
// the other.
type Result struct {
	Mode          Mode    `json:"mode"`
	DailyLimit    float64 `json:"daily_limit"`
	TotalExpenses float64 `json:"total_expenses"`

	Paycheck  *PaycheckFigures  `json:"paycheck,omitempty"`
	FixedPool *FixedPoolFigures `json:"fixed_pool,omitempty"`
}

// PaycheckFigures are the paycheck mode details.
type PaycheckFigures struct {
	TotalIncome    float64 `json:"total_income"`
	RemainingMoney float64 `json:"remaining_money"` // may be negative
	DaysRemaining  int     `json:"days_remaining"`
	IsDeficit      bool    `json:"is_deficit"`
	DeficitAmount  float64 `json:"deficit_amount"`
}

// FixedPoolFigures are the fixed pool mode details. DaysRemaining and
// MonthsRemaining are unbounded when the pool never runs out.
type FixedPoolFigures struct {
	TotalMoney      float64    `json:"total_money"`
	CalculationMode string     `json:"calculation_mode,omitempty"`
	OutOfMoney      bool       `json:"out_of_money"`
	DaysRemaining   Runway     `json:"days_remaining"`
	MonthsRemaining Runway     `json:"months_remaining"`
	EndDate         *time.Time `json:"end_date,omitempty"`
	TargetEndDate   *time.Time `json:"target_end_date,omitempty"`

	// Alternative shows what the other spending assumption would
	// yield, for side-by-side comparison in the UI.
	Alternative *Alternative `json:"alternative,omitempty"`
}

// Alternative is the comparison figure attached to the target-date and
// daily-cap variants: for target-date it is the expense-derived daily
// rate and how long the pool would last at it; for daily-cap it is the
// daily limit implied by spending at the expense rate.
type Alternative struct {
	DailyLimit    float64    `json:"daily_limit"`
	DaysRemaining Runway     `json:"days_remaining"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

// Compute dispatches on the configured mode. today is only used by
// fixed pool mode and must be the user's local calendar day.
func Compute(cfg Config, totalExpenses float64, today time.Time) (*Result, error) {
	switch c := cfg.(type) {
	case Paycheck:
		return ComputePaycheck(c.MonthlyIncome, c.DaysUntilPaycheck, totalExpenses)
	case FixedPool:
		return ComputeFixedPool(c, totalExpenses, today)
	default:
		return nil, invalid("mode", fmt.Sprintf("unknown budget mode %T", cfg))
	}
}

// ComputePaycheck computes the daily limit for paycheck mode: what is
// left of the monthly income after expenses, spread across the days
// until the next paycheck. A deficit floors the daily limit at zero,
// never negative spending power.
func ComputePaycheck(monthlyIncome float64, daysUntilPaycheck int, totalExpenses float64) (*Result, error) {
	if monthlyIncome < 0 {
		return nil, invalid("monthly_income", "cannot be negative")
	}
	if daysUntilPaycheck <= 0 {
		return nil, invalid("days_until_paycheck", "must be positive")
	}
	if daysUntilPaycheck > MaxDaysUntilPaycheck {
		return nil, invalid("days_until_paycheck", fmt.Sprintf("cannot exceed %d", MaxDaysUntilPaycheck))
	}

	remaining := monthlyIncome - totalExpenses
	dailyLimit := math.Max(0, remaining/float64(daysUntilPaycheck))

	return &Result{
		Mode:          ModePaycheck,
		DailyLimit:    dailyLimit,
		TotalExpenses: totalExpenses,
		Paycheck: &PaycheckFigures{
			TotalIncome:    monthlyIncome,
			RemainingMoney: remaining,
			DaysRemaining:  daysUntilPaycheck,
			IsDeficit:      remaining < 0,
			DeficitAmount:  math.Max(0, -remaining),
		},
	}, nil
}

// ComputeFixedPool computes the daily limit for fixed pool mode.
// Branch order matters: an empty pool wins over any refinement, then
// the configured refinement (target date or daily cap), then the
// expenses-derived fallback.
func ComputeFixedPool(cfg FixedPool, totalExpenses float64, today time.Time) (*Result, error) {
	if cfg.TotalMoney < 0 {
		return nil, invalid("total_money", "cannot be negative")
	}

	if cfg.TotalMoney <= 0 {
		return &Result{
			Mode:          ModeFixedPool,
			DailyLimit:    0,
			TotalExpenses: totalExpenses,
			FixedPool: &FixedPoolFigures{
				TotalMoney:      cfg.TotalMoney,
				OutOfMoney:      true,
				DaysRemaining:   RunwayDays(0),
				MonthsRemaining: RunwayDays(0),
			},
		}, nil
	}

	switch r := cfg.Refinement.(type) {
	case TargetDate:
		return fixedPoolTargetDate(cfg.TotalMoney, totalExpenses, r.Date, today)
	case DailyCap:
		return fixedPoolDailyCap(cfg.TotalMoney, totalExpenses, r.Amount, today)
	case nil:
		return fixedPoolFallback(cfg.TotalMoney, totalExpenses, today), nil
	default:
		return nil, invalid("refinement", fmt.Sprintf("unknown refinement %T", cfg.Refinement))
	}
}

// fixedPoolTargetDate: make the money last until the target date. The
// monthly expenses are approximated as a uniform daily rate and set
// aside for the whole period; the rest is free spending.
func fixedPoolTargetDate(totalMoney, totalExpenses float64, target, today time.Time) (*Result, error) {
	daysUntilTarget := daysBetweenDates(today, target)
	if daysUntilTarget <= 0 {
		return nil, invalid("target_end_date", "must be in the future")
	}

	dailyExpenseRate := totalExpenses / DaysPerMonth
	periodExpenses := dailyExpenseRate * float64(daysUntilTarget)
	dailyLimit := math.Max(0, (totalMoney-periodExpenses)/float64(daysUntilTarget))

	// Comparison: how long the pool would last if spent at the
	// expense rate instead.
	alt := &Alternative{DailyLimit: dailyExpenseRate}
	if totalExpenses > 0 {
		altDays := totalMoney / dailyExpenseRate
		altEnd := addDays(today, altDays)
		alt.DaysRemaining = RunwayDays(altDays)
		alt.EndDate = &altEnd
	} else {
		alt.DaysRemaining = UnboundedRunway()
	}

	targetCopy := target
	return &Result{
		Mode:          ModeFixedPool,
		DailyLimit:    dailyLimit,
		TotalExpenses: totalExpenses,
		FixedPool: &FixedPoolFigures{
			TotalMoney:      totalMoney,
			CalculationMode: CalcTargetDate,
			DaysRemaining:   RunwayDays(float64(daysUntilTarget)),
			MonthsRemaining: RunwayDays(float64(daysUntilTarget)).Months(),
			TargetEndDate:   &targetCopy,
			Alternative:     alt,
		},
	}, nil
}

// fixedPoolDailyCap: spend exactly the cap per day and report how long
// the pool lasts.
func fixedPoolDailyCap(totalMoney, totalExpenses, capAmount float64, today time.Time) (*Result, error) {
	if capAmount <= 0 {
		return nil, invalid("daily_spending_limit", "must be positive")
	}

	days := totalMoney / capAmount
	end := addDays(today, days)

	// Comparison: the daily limit implied by spending at the expense
	// rate instead.
	alt := &Alternative{}
	if totalExpenses > 0 {
		altDays := totalMoney / (totalExpenses / DaysPerMonth)
		alt.DailyLimit = totalMoney / altDays
		alt.DaysRemaining = RunwayDays(altDays)
	} else {
		alt.DaysRemaining = UnboundedRunway()
	}

	return &Result{
		Mode:          ModeFixedPool,
		DailyLimit:    capAmount,
		TotalExpenses: totalExpenses,
		FixedPool: &FixedPoolFigures{
			TotalMoney:      totalMoney,
			CalculationMode: CalcDailyLimit,
			DaysRemaining:   RunwayDays(days),
			MonthsRemaining: RunwayDays(days).Months(),
			EndDate:         &end,
			Alternative:     alt,
		},
	}, nil
}

// fixedPoolFallback: no refinement given, derive the runway purely
// from monthly expenses. Zero expenses means the pool never runs out;
// that is a defined state, not an error, and no daily spending rate
// can be derived from it.
func fixedPoolFallback(totalMoney, totalExpenses float64, today time.Time) *Result {
	fig := &FixedPoolFigures{
		TotalMoney:      totalMoney,
		CalculationMode: CalcExpensesBased,
	}
	var dailyLimit float64

	if totalExpenses > 0 {
		months := totalMoney / totalExpenses
		days := months * DaysPerMonth
		dailyLimit = totalMoney / days
		end := addDays(today, days)
		fig.DaysRemaining = RunwayDays(days)
		fig.MonthsRemaining = RunwayDays(days).Months()
		fig.EndDate = &end
	} else {
		fig.DaysRemaining = UnboundedRunway()
		fig.MonthsRemaining = UnboundedRunway()
	}

	return &Result{
		Mode:          ModeFixedPool,
		DailyLimit:    dailyLimit,
		TotalExpenses: totalExpenses,
		FixedPool:     fig,
	}
}

// daysBetweenDates is a date-only subtraction: both instants are
// truncated to their calendar day before differencing.
func daysBetweenDates(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}

// addDays adds a possibly fractional number of days to a date. The
// whole days go through AddDate; a time.Duration only carries the
// sub-day remainder, since a long runway (tiny cap, huge pool) would
// overflow it.
func addDays(t time.Time, days float64) time.Time {
	whole := math.Trunc(days)
	frac := days - whole
	return t.AddDate(0, 0, int(whole)).Add(time.Duration(frac * 24 * float64(time.Hour)))
}
