package handler

import (
	"net/http"
	"time"

	"github.com/WatsonMulkey/The-Number/internal/budget"
	"github.com/WatsonMulkey/The-Number/internal/store"
	"github.com/WatsonMulkey/The-Number/internal/timeutil"
	"github.com/WatsonMulkey/The-Number/internal/util"

	"github.com/gin-gonic/gin"
)

// NumberHandler serves the daily number and the budget configuration
// behind it.
type NumberHandler struct {
	Settings        *store.SettingsStore
	Expenses        *store.ExpenseStore
	Txns            *store.TransactionStore
	DefaultTimezone string
}

func NewNumberHandler(settings *store.SettingsStore, expenses *store.ExpenseStore, txns *store.TransactionStore, defaultTZ string) *NumberHandler {
	if defaultTZ == "" {
		defaultTZ = timeutil.DefaultTimezone
	}
	return &NumberHandler{
		Settings:        settings,
		Expenses:        expenses,
		Txns:            txns,
		DefaultTimezone: defaultTZ,
	}
}

// GetNumber computes today's spending allowance: the configured budget,
// minus recurring expenses, minus what was already spent inside the
// user's local day.
func (h *NumberHandler) GetNumber(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	cfg, configured, err := h.Settings.LoadBudgetConfig(user.ID)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	if !configured {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not configured yet")
		return
	}

	ledger, err := h.Expenses.Ledger(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load expenses failed")
		return
	}

	now := time.Now()
	loc := timeutil.Resolve(user.Timezone, h.DefaultTimezone)
	today := timeutil.LocalToday(now, loc)

	res, err := budget.Compute(cfg, ledger.Total(), today)
	if err != nil {
		writeStoreErr(c, err)
		return
	}

	dayStart, dayEnd := timeutil.DayBoundsUTC(now, loc)
	todaySpending, err := h.Txns.SumBetween(user.ID, dayStart, dayEnd)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "sum spending failed")
		return
	}

	day := budget.AssembleToday(res, todaySpending)

	util.Success(c, util.Response{
		"date":   today.Format("2006-01-02"),
		"number": day,
		"result": res,
	})
}

// ---------- configuration ----------

type configureBudgetReq struct {
	Mode              string   `json:"mode" binding:"required,oneof=paycheck fixed_pool"`
	MonthlyIncome     *float64 `json:"monthly_income"`
	DaysUntilPaycheck *int     `json:"days_until_paycheck"`
	TotalMoney        *float64 `json:"total_money"`
	TargetEndDate     string   `json:"target_end_date"`
	DailySpendLimit   *float64 `json:"daily_spending_limit"`
}

// decode turns the flat request into the tagged config, refusing
// contradictory refinements up front.
func (r *configureBudgetReq) decode() (budget.Config, error) {
	switch budget.Mode(r.Mode) {
	case budget.ModePaycheck:
		if r.MonthlyIncome == nil {
			return nil, &budget.ValidationError{Field: "monthly_income", Reason: "is required in paycheck mode"}
		}
		if r.DaysUntilPaycheck == nil {
			return nil, &budget.ValidationError{Field: "days_until_paycheck", Reason: "is required in paycheck mode"}
		}
		return budget.Paycheck{
			MonthlyIncome:     *r.MonthlyIncome,
			DaysUntilPaycheck: *r.DaysUntilPaycheck,
		}, nil

	case budget.ModeFixedPool:
		if r.TotalMoney == nil {
			return nil, &budget.ValidationError{Field: "total_money", Reason: "is required in fixed pool mode"}
		}
		if r.TargetEndDate != "" && r.DailySpendLimit != nil {
			return nil, &budget.ValidationError{
				Field:  "target_end_date",
				Reason: "cannot be combined with daily_spending_limit; pick one",
			}
		}
		cfg := budget.FixedPool{TotalMoney: *r.TotalMoney}
		if r.TargetEndDate != "" {
			target, err := util.ParseDate(r.TargetEndDate)
			if err != nil {
				return nil, &budget.ValidationError{Field: "target_end_date", Reason: "must be RFC3339 or YYYY-MM-DD"}
			}
			cfg.Refinement = budget.TargetDate{Date: target}
		} else if r.DailySpendLimit != nil {
			cfg.Refinement = budget.DailyCap{Amount: *r.DailySpendLimit}
		}
		return cfg, nil

	default:
		return nil, &budget.ValidationError{Field: "mode", Reason: "must be paycheck or fixed_pool"}
	}
}

// ConfigureBudget validates and stores the budget configuration. The
// config is run through the engine before saving, so a setup that can
// never compute is rejected here rather than surfacing later.
func (h *NumberHandler) ConfigureBudget(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req configureBudgetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	cfg, err := req.decode()
	if err != nil {
		writeStoreErr(c, err)
		return
	}

	ledger, err := h.Expenses.Ledger(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "load expenses failed")
		return
	}

	loc := timeutil.Resolve(user.Timezone, h.DefaultTimezone)
	today := timeutil.LocalToday(time.Now(), loc)

	if _, err := budget.Compute(cfg, ledger.Total(), today); err != nil {
		writeStoreErr(c, err)
		return
	}

	if err := h.Settings.SaveBudgetConfig(user.ID, cfg); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save configuration failed")
		return
	}
	if err := h.Settings.Set(user.ID, store.KeyOnboarded, true); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "save configuration failed")
		return
	}

	util.Success(c, util.Response{
		"message": "budget configured",
		"mode":    string(cfg.Mode()),
	})
}

// GetBudgetConfig returns the stored configuration in the same flat
// shape ConfigureBudget accepts.
func (h *NumberHandler) GetBudgetConfig(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	cfg, configured, err := h.Settings.LoadBudgetConfig(user.ID)
	if err != nil {
		writeStoreErr(c, err)
		return
	}
	if !configured {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "budget not configured yet")
		return
	}

	out := gin.H{"mode": string(cfg.Mode())}
	switch c2 := cfg.(type) {
	case budget.Paycheck:
		out["monthly_income"] = c2.MonthlyIncome
		out["days_until_paycheck"] = c2.DaysUntilPaycheck
	case budget.FixedPool:
		out["total_money"] = c2.TotalMoney
		switch r := c2.Refinement.(type) {
		case budget.TargetDate:
			out["target_end_date"] = r.Date.Format("2006-01-02")
		case budget.DailyCap:
			out["daily_spending_limit"] = r.Amount
		}
	}

	util.Success(c, util.Response{"config": out})
}
