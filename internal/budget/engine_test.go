package budget

import (
	"math"
	"reflect"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// fixed "today" so every fixed pool test is deterministic
var testToday = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// ==================== paycheck mode ====================

func TestComputePaycheck_Basic(t *testing.T) {
	res, err := ComputePaycheck(3000, 15, 2000)
	if err != nil {
		t.Fatalf("ComputePaycheck() error = %v, want nil", err)
	}

	if res.Mode != ModePaycheck {
		t.Errorf("Mode = %q, want %q", res.Mode, ModePaycheck)
	}
	if res.Paycheck == nil {
		t.Fatal("Paycheck figures missing")
	}
	if res.FixedPool != nil {
		t.Error("FixedPool figures should be absent in paycheck mode")
	}
	if !almostEqual(res.Paycheck.RemainingMoney, 1000) {
		t.Errorf("RemainingMoney = %f, want 1000", res.Paycheck.RemainingMoney)
	}
	if !almostEqual(res.DailyLimit, 1000.0/15.0) {
		t.Errorf("DailyLimit = %f, want %f", res.DailyLimit, 1000.0/15.0)
	}
	if res.Paycheck.IsDeficit {
		t.Error("IsDeficit = true, want false")
	}
	if res.Paycheck.DaysRemaining != 15 {
		t.Errorf("DaysRemaining = %d, want 15", res.Paycheck.DaysRemaining)
	}
}

func TestComputePaycheck_Deficit(t *testing.T) {
	res, err := ComputePaycheck(2000, 14, 3500)
	if err != nil {
		t.Fatalf("ComputePaycheck() error = %v, want nil", err)
	}

	if !res.Paycheck.IsDeficit {
		t.Error("IsDeficit = false, want true")
	}
	if !almostEqual(res.Paycheck.DeficitAmount, 1500) {
		t.Errorf("DeficitAmount = %f, want 1500", res.Paycheck.DeficitAmount)
	}
	if !almostEqual(res.Paycheck.RemainingMoney, -1500) {
		t.Errorf("RemainingMoney = %f, want -1500", res.Paycheck.RemainingMoney)
	}
	// deficits floor to zero, never negative spending power
	if res.DailyLimit != 0 {
		t.Errorf("DailyLimit = %f, want 0", res.DailyLimit)
	}
}

func TestComputePaycheck_ZeroExpenses(t *testing.T) {
	res, err := ComputePaycheck(3000, 30, 0)
	if err != nil {
		t.Fatalf("ComputePaycheck() error = %v, want nil", err)
	}
	if !almostEqual(res.DailyLimit, 100) {
		t.Errorf("DailyLimit = %f, want 100", res.DailyLimit)
	}
}

func TestComputePaycheck_InvalidDays(t *testing.T) {
	testCases := []int{0, -5, 366}

	for _, days := range testCases {
		_, err := ComputePaycheck(3000, days, 0)
		if err == nil {
			t.Errorf("ComputePaycheck(days=%d) error = nil, want error", days)
			continue
		}
		ve, ok := AsValidation(err)
		if !ok {
			t.Errorf("ComputePaycheck(days=%d) error = %v, want ValidationError", days, err)
			continue
		}
		if ve.Field != "days_until_paycheck" {
			t.Errorf("Field = %q, want days_until_paycheck", ve.Field)
		}
	}

	// boundary: exactly one year out is accepted
	if _, err := ComputePaycheck(3000, 365, 0); err != nil {
		t.Errorf("ComputePaycheck(days=365) error = %v, want nil", err)
	}
}

func TestComputePaycheck_NegativeIncome(t *testing.T) {
	_, err := ComputePaycheck(-1, 10, 0)
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if ve.Field != "monthly_income" {
		t.Errorf("Field = %q, want monthly_income", ve.Field)
	}
}

func TestComputePaycheck_DailyLimitNeverNegative(t *testing.T) {
	testCases := []struct {
		income   float64
		days     int
		expenses float64
	}{
		{0, 1, 0},
		{0, 30, 5000},
		{1000, 365, 999999},
		{2500, 14, 2500},
	}

	for _, tc := range testCases {
		res, err := ComputePaycheck(tc.income, tc.days, tc.expenses)
		if err != nil {
			t.Fatalf("ComputePaycheck(%v) error = %v, want nil", tc, err)
		}
		if res.DailyLimit < 0 {
			t.Errorf("ComputePaycheck(%v) DailyLimit = %f, want >= 0", tc, res.DailyLimit)
		}
	}
}

// ==================== fixed pool mode ====================

func TestComputeFixedPool_ZeroMoney(t *testing.T) {
	res, err := ComputeFixedPool(FixedPool{TotalMoney: 0}, 1500, testToday)
	if err != nil {
		t.Fatalf("ComputeFixedPool() error = %v, want nil", err)
	}

	fp := res.FixedPool
	if fp == nil {
		t.Fatal("FixedPool figures missing")
	}
	if !fp.OutOfMoney {
		t.Error("OutOfMoney = false, want true")
	}
	if res.DailyLimit != 0 {
		t.Errorf("DailyLimit = %f, want 0", res.DailyLimit)
	}
	if fp.DaysRemaining.Unbounded() || fp.DaysRemaining.Days() != 0 {
		t.Errorf("DaysRemaining = %v, want 0", fp.DaysRemaining)
	}
	if fp.MonthsRemaining.Unbounded() || fp.MonthsRemaining.Days() != 0 {
		t.Errorf("MonthsRemaining = %v, want 0", fp.MonthsRemaining)
	}
}

func TestComputeFixedPool_ZeroMoneyBeatsRefinements(t *testing.T) {
	// the out-of-money branch takes priority over any refinement
	target := testToday.AddDate(0, 1, 0)
	configs := []FixedPool{
		{TotalMoney: 0, Refinement: TargetDate{Date: target}},
		{TotalMoney: 0, Refinement: DailyCap{Amount: 50}},
	}

	for _, cfg := range configs {
		res, err := ComputeFixedPool(cfg, 1000, testToday)
		if err != nil {
			t.Fatalf("ComputeFixedPool(%+v) error = %v, want nil", cfg, err)
		}
		if !res.FixedPool.OutOfMoney {
			t.Errorf("ComputeFixedPool(%+v) OutOfMoney = false, want true", cfg)
		}
	}
}

func TestComputeFixedPool_NegativeMoney(t *testing.T) {
	_, err := ComputeFixedPool(FixedPool{TotalMoney: -100}, 0, testToday)
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if ve.Field != "total_money" {
		t.Errorf("Field = %q, want total_money", ve.Field)
	}
}

func TestComputeFixedPool_NoExpensesFallback(t *testing.T) {
	res, err := ComputeFixedPool(FixedPool{TotalMoney: 5000}, 0, testToday)
	if err != nil {
		t.Fatalf("ComputeFixedPool() error = %v, want nil", err)
	}

	fp := res.FixedPool
	if !fp.DaysRemaining.Unbounded() {
		t.Error("DaysRemaining should be unbounded with zero expenses")
	}
	if !fp.MonthsRemaining.Unbounded() {
		t.Error("MonthsRemaining should be unbounded with zero expenses")
	}
	// no spending rate can be derived, defined edge case
	if res.DailyLimit != 0 {
		t.Errorf("DailyLimit = %f, want 0", res.DailyLimit)
	}
	if fp.OutOfMoney {
		t.Error("OutOfMoney = true, want false")
	}
	if fp.EndDate != nil {
		t.Error("EndDate should be absent for an unbounded runway")
	}
}

func TestComputeFixedPool_ExactOneMonth(t *testing.T) {
	res, err := ComputeFixedPool(FixedPool{TotalMoney: 3000}, 3000, testToday)
	if err != nil {
		t.Fatalf("ComputeFixedPool() error = %v, want nil", err)
	}

	fp := res.FixedPool
	if !almostEqual(fp.MonthsRemaining.Days(), 1) {
		t.Errorf("MonthsRemaining = %f, want 1", fp.MonthsRemaining.Days())
	}
	if !almostEqual(fp.DaysRemaining.Days(), 30) {
		t.Errorf("DaysRemaining = %f, want 30", fp.DaysRemaining.Days())
	}
	if !almostEqual(res.DailyLimit, 100) {
		t.Errorf("DailyLimit = %f, want 100", res.DailyLimit)
	}
}

func TestComputeFixedPool_FallbackIdentities(t *testing.T) {
	testCases := []struct {
		money    float64
		expenses float64
	}{
		{3000, 3000},
		{5000, 1250},
		{123.45, 67.89},
		{10000, 333.33},
	}

	for _, tc := range testCases {
		res, err := ComputeFixedPool(FixedPool{TotalMoney: tc.money}, tc.expenses, testToday)
		if err != nil {
			t.Fatalf("ComputeFixedPool(%v) error = %v, want nil", tc, err)
		}
		fp := res.FixedPool

		days := fp.DaysRemaining.Days()
		months := fp.MonthsRemaining.Days()
		if res.DailyLimit != tc.money/days {
			t.Errorf("money=%f expenses=%f: DailyLimit = %v, want money/days = %v",
				tc.money, tc.expenses, res.DailyLimit, tc.money/days)
		}
		if days != months*DaysPerMonth {
			t.Errorf("money=%f expenses=%f: days = %v, want months*30 = %v",
				tc.money, tc.expenses, days, months*DaysPerMonth)
		}
	}
}

func TestComputeFixedPool_TargetDate(t *testing.T) {
	target := testToday.AddDate(0, 0, 10)
	res, err := ComputeFixedPool(
		FixedPool{TotalMoney: 1000, Refinement: TargetDate{Date: target}},
		300, testToday,
	)
	if err != nil {
		t.Fatalf("ComputeFixedPool() error = %v, want nil", err)
	}

	fp := res.FixedPool
	if fp.CalculationMode != CalcTargetDate {
		t.Errorf("CalculationMode = %q, want %q", fp.CalculationMode, CalcTargetDate)
	}
	// expense rate 300/30 = 10/day, period expenses 100, (1000-100)/10 = 90
	if !almostEqual(res.DailyLimit, 90) {
		t.Errorf("DailyLimit = %f, want 90", res.DailyLimit)
	}
	if !almostEqual(fp.DaysRemaining.Days(), 10) {
		t.Errorf("DaysRemaining = %f, want 10", fp.DaysRemaining.Days())
	}
	if !almostEqual(fp.MonthsRemaining.Days(), 10.0/30.0) {
		t.Errorf("MonthsRemaining = %f, want %f", fp.MonthsRemaining.Days(), 10.0/30.0)
	}
	if fp.TargetEndDate == nil || !fp.TargetEndDate.Equal(target) {
		t.Errorf("TargetEndDate = %v, want %v", fp.TargetEndDate, target)
	}

	// alternative: spending at the expense rate, pool lasts 1000/10 = 100 days
	alt := fp.Alternative
	if alt == nil {
		t.Fatal("Alternative missing")
	}
	if !almostEqual(alt.DailyLimit, 10) {
		t.Errorf("Alternative.DailyLimit = %f, want 10", alt.DailyLimit)
	}
	if !almostEqual(alt.DaysRemaining.Days(), 100) {
		t.Errorf("Alternative.DaysRemaining = %f, want 100", alt.DaysRemaining.Days())
	}
	if alt.EndDate == nil {
		t.Error("Alternative.EndDate missing")
	}
}

func TestComputeFixedPool_TargetDate_ZeroExpenses(t *testing.T) {
	target := testToday.AddDate(0, 0, 20)
	res, err := ComputeFixedPool(
		FixedPool{TotalMoney: 1000, Refinement: TargetDate{Date: target}},
		0, testToday,
	)
	if err != nil {
		t.Fatalf("ComputeFixedPool() error = %v, want nil", err)
	}

	if !almostEqual(res.DailyLimit, 50) {
		t.Errorf("DailyLimit = %f, want 50", res.DailyLimit)
	}
	alt := res.FixedPool.Alternative
	if !alt.DaysRemaining.Unbounded() {
		t.Error("Alternative.DaysRemaining should be unbounded with zero expenses")
	}
	if alt.EndDate != nil {
		t.Error("Alternative.EndDate should be absent when unbounded")
	}
}

func TestComputeFixedPool_TargetDate_NotInFuture(t *testing.T) {
	testCases := []time.Time{
		testToday,                   // today itself is not "in the future"
		testToday.AddDate(0, 0, -1), // yesterday
	}

	for _, target := range testCases {
		_, err := ComputeFixedPool(
			FixedPool{TotalMoney: 1000, Refinement: TargetDate{Date: target}},
			100, testToday,
		)
		ve, ok := AsValidation(err)
		if !ok {
			t.Errorf("target=%v: error = %v, want ValidationError", target, err)
			continue
		}
		if ve.Field != "target_end_date" {
			t.Errorf("Field = %q, want target_end_date", ve.Field)
		}
	}
}

func TestComputeFixedPool_DailyCap(t *testing.T) {
	res, err := ComputeFixedPool(
		FixedPool{TotalMoney: 900, Refinement: DailyCap{Amount: 30}},
		600, testToday,
	)
	if err != nil {
		t.Fatalf("ComputeFixedPool() error = %v, want nil", err)
	}

	fp := res.FixedPool
	if fp.CalculationMode != CalcDailyLimit {
		t.Errorf("CalculationMode = %q, want %q", fp.CalculationMode, CalcDailyLimit)
	}
	if !almostEqual(res.DailyLimit, 30) {
		t.Errorf("DailyLimit = %f, want 30", res.DailyLimit)
	}
	if !almostEqual(fp.DaysRemaining.Days(), 30) {
		t.Errorf("DaysRemaining = %f, want 30", fp.DaysRemaining.Days())
	}
	if !almostEqual(fp.MonthsRemaining.Days(), 1) {
		t.Errorf("MonthsRemaining = %f, want 1", fp.MonthsRemaining.Days())
	}
	wantEnd := testToday.Add(30 * 24 * time.Hour)
	if fp.EndDate == nil || !fp.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", fp.EndDate, wantEnd)
	}

	// alternative: at the expense rate (600/30 = 20/day) the pool
	// lasts 45 days
	alt := fp.Alternative
	if !almostEqual(alt.DailyLimit, 20) {
		t.Errorf("Alternative.DailyLimit = %f, want 20", alt.DailyLimit)
	}
	if !almostEqual(alt.DaysRemaining.Days(), 45) {
		t.Errorf("Alternative.DaysRemaining = %f, want 45", alt.DaysRemaining.Days())
	}
}

func TestComputeFixedPool_DailyCap_ZeroExpenses(t *testing.T) {
	res, err := ComputeFixedPool(
		FixedPool{TotalMoney: 900, Refinement: DailyCap{Amount: 30}},
		0, testToday,
	)
	if err != nil {
		t.Fatalf("ComputeFixedPool() error = %v, want nil", err)
	}

	alt := res.FixedPool.Alternative
	if !alt.DaysRemaining.Unbounded() {
		t.Error("Alternative.DaysRemaining should be unbounded with zero expenses")
	}
	if alt.DailyLimit != 0 {
		t.Errorf("Alternative.DailyLimit = %f, want 0", alt.DailyLimit)
	}
}

func TestComputeFixedPool_DailyCap_Invalid(t *testing.T) {
	testCases := []float64{0, -5}

	for _, amount := range testCases {
		_, err := ComputeFixedPool(
			FixedPool{TotalMoney: 900, Refinement: DailyCap{Amount: amount}},
			0, testToday,
		)
		ve, ok := AsValidation(err)
		if !ok {
			t.Errorf("cap=%f: error = %v, want ValidationError", amount, err)
			continue
		}
		if ve.Field != "daily_spending_limit" {
			t.Errorf("Field = %q, want daily_spending_limit", ve.Field)
		}
	}
}

func TestComputeFixedPool_DailyCap_TinyCapLongRunway(t *testing.T) {
	// 10M pool at a tenth of a cent per day: ~10^11 days. The runway
	// figure must survive and the end date must still land after
	// today, not wrap around.
	res, err := ComputeFixedPool(
		FixedPool{TotalMoney: 10_000_000, Refinement: DailyCap{Amount: 0.0001}},
		0, testToday,
	)
	if err != nil {
		t.Fatalf("ComputeFixedPool() error = %v, want nil", err)
	}

	fp := res.FixedPool
	if !almostEqual(fp.DaysRemaining.Days(), 1e11) {
		t.Errorf("DaysRemaining = %f, want 1e11", fp.DaysRemaining.Days())
	}
	if fp.EndDate == nil {
		t.Fatal("EndDate = nil, want a date")
	}
	if !fp.EndDate.After(testToday) {
		t.Errorf("EndDate = %v, want after %v", fp.EndDate, testToday)
	}
	wantEnd := testToday.AddDate(0, 0, int(1e11))
	if !fp.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", fp.EndDate, wantEnd)
	}
}

// ==================== dispatch & determinism ====================

func TestCompute_Dispatch(t *testing.T) {
	res, err := Compute(Paycheck{MonthlyIncome: 3000, DaysUntilPaycheck: 15}, 2000, testToday)
	if err != nil {
		t.Fatalf("Compute(paycheck) error = %v", err)
	}
	if res.Mode != ModePaycheck {
		t.Errorf("Mode = %q, want %q", res.Mode, ModePaycheck)
	}

	res, err = Compute(FixedPool{TotalMoney: 5000}, 1000, testToday)
	if err != nil {
		t.Fatalf("Compute(fixed_pool) error = %v", err)
	}
	if res.Mode != ModeFixedPool {
		t.Errorf("Mode = %q, want %q", res.Mode, ModeFixedPool)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	// with "now" supplied explicitly, identical inputs must yield
	// identical results
	cfgs := []Config{
		Paycheck{MonthlyIncome: 3210.55, DaysUntilPaycheck: 17},
		FixedPool{TotalMoney: 4321.99},
		FixedPool{TotalMoney: 4321.99, Refinement: TargetDate{Date: testToday.AddDate(0, 2, 3)}},
		FixedPool{TotalMoney: 4321.99, Refinement: DailyCap{Amount: 42.42}},
	}

	for _, cfg := range cfgs {
		first, err := Compute(cfg, 1234.56, testToday)
		if err != nil {
			t.Fatalf("Compute(%+v) error = %v", cfg, err)
		}
		second, err := Compute(cfg, 1234.56, testToday)
		if err != nil {
			t.Fatalf("Compute(%+v) second call error = %v", cfg, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Compute(%+v) not idempotent:\nfirst:  %+v\nsecond: %+v", cfg, first, second)
		}
	}
}
