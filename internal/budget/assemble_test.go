package budget

import "testing"

func TestAssembleToday_UnderBudget(t *testing.T) {
	res := &Result{Mode: ModePaycheck, DailyLimit: 66.67}
	day := AssembleToday(res, 40)

	if !almostEqual(day.RemainingToday, 26.67) {
		t.Errorf("RemainingToday = %f, want 26.67", day.RemainingToday)
	}
	if day.IsOverBudget {
		t.Error("IsOverBudget = true, want false")
	}
	if !almostEqual(day.TodaySpending, 40) {
		t.Errorf("TodaySpending = %f, want 40", day.TodaySpending)
	}
}

func TestAssembleToday_OverBudget(t *testing.T) {
	res := &Result{Mode: ModeFixedPool, DailyLimit: 25}
	day := AssembleToday(res, 80)

	if !almostEqual(day.RemainingToday, -55) {
		t.Errorf("RemainingToday = %f, want -55", day.RemainingToday)
	}
	if !day.IsOverBudget {
		t.Error("IsOverBudget = false, want true")
	}
}

func TestAssembleToday_ExactlyOnBudget(t *testing.T) {
	res := &Result{Mode: ModePaycheck, DailyLimit: 50}
	day := AssembleToday(res, 50)

	if day.RemainingToday != 0 {
		t.Errorf("RemainingToday = %f, want 0", day.RemainingToday)
	}
	// spending exactly the limit is not over budget
	if day.IsOverBudget {
		t.Error("IsOverBudget = true, want false")
	}
}
