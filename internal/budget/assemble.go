package budget

// DayNumber is the final user-facing figure: what is left to spend
// today after netting logged spending against the daily limit.
type DayNumber struct {
	DailyLimit     float64 `json:"daily_limit"`
	TodaySpending  float64 `json:"today_spending"`
	RemainingToday float64 `json:"remaining_today"` // may be negative
	IsOverBudget   bool    `json:"is_over_budget"`
}

// AssembleToday nets today's spending against the computed daily
// limit. todaySpending must come from the same local-day window the
// caller used to resolve "today"; mixing windows silently produces a
// wrong number.
func AssembleToday(res *Result, todaySpending float64) DayNumber {
	remaining := res.DailyLimit - todaySpending
	return DayNumber{
		DailyLimit:     res.DailyLimit,
		TodaySpending:  todaySpending,
		RemainingToday: remaining,
		IsOverBudget:   remaining < 0,
	}
}
