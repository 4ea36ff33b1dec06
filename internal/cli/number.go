package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var numberCmd = &cobra.Command{
	Use:   "number",
	Short: "Show today's spending allowance",
	RunE:  runNumber,
}

func init() {
	rootCmd.AddCommand(numberCmd)
}

// numberData mirrors the GET /api/number payload.
type numberData struct {
	Date   string `json:"date"`
	Number struct {
		DailyLimit     float64 `json:"daily_limit"`
		TodaySpending  float64 `json:"today_spending"`
		RemainingToday float64 `json:"remaining_today"`
		IsOverBudget   bool    `json:"is_over_budget"`
	} `json:"number"`
	Result struct {
		Mode          string  `json:"mode"`
		TotalExpenses float64 `json:"total_expenses"`
		Paycheck      *struct {
			RemainingMoney float64 `json:"remaining_money"`
			DaysRemaining  int     `json:"days_remaining"`
			IsDeficit      bool    `json:"is_deficit"`
			DeficitAmount  float64 `json:"deficit_amount"`
		} `json:"paycheck"`
		FixedPool *struct {
			TotalMoney      float64     `json:"total_money"`
			CalculationMode string      `json:"calculation_mode"`
			OutOfMoney      bool        `json:"out_of_money"`
			DaysRemaining   interface{} `json:"days_remaining"`
			MonthsRemaining interface{} `json:"months_remaining"`
			EndDate         *string     `json:"end_date"`
		} `json:"fixed_pool"`
	} `json:"result"`
}

func runNumber(_ *cobra.Command, _ []string) error {
	var data numberData
	if err := client().Get("/api/number", &data); err != nil {
		if apiErr, ok := err.(*apiError); ok && apiErr.Code == 40401 {
			fmt.Println("\n  No budget configured yet. Run `numberctl configure` first.")
			return nil
		}
		return err
	}

	fmt.Println()
	fmt.Println(RenderNumber(
		data.Date,
		data.Number.RemainingToday,
		data.Number.DailyLimit,
		data.Number.TodaySpending,
		data.Number.IsOverBudget,
	))
	fmt.Println()

	pairs := [][2]string{
		{"mode", data.Result.Mode},
		{"monthly expenses", FormatMoney(data.Result.TotalExpenses)},
	}
	if p := data.Result.Paycheck; p != nil {
		pairs = append(pairs,
			[2]string{"until paycheck", fmt.Sprintf("%d days", p.DaysRemaining)},
			[2]string{"left after bills", FormatMoney(p.RemainingMoney)},
		)
		if p.IsDeficit {
			pairs = append(pairs, [2]string{"shortfall", badStyle.Render(FormatMoney(p.DeficitAmount))})
		}
	}
	if fp := data.Result.FixedPool; fp != nil {
		pairs = append(pairs, [2]string{"money left", FormatMoney(fp.TotalMoney)})
		if fp.OutOfMoney {
			pairs = append(pairs, [2]string{"status", badStyle.Render("out of money")})
		} else {
			pairs = append(pairs,
				[2]string{"runway", formatRunway(fp.DaysRemaining, "days")},
				[2]string{"", formatRunway(fp.MonthsRemaining, "months")},
			)
			if fp.EndDate != nil {
				pairs = append(pairs, [2]string{"runs out", (*fp.EndDate)[:10]})
			}
		}
	}
	fmt.Print(RenderKV(pairs))

	return nil
}

// formatRunway handles the runway encoding: a number, or the string
// "unbounded" when spending never drains the pool.
func formatRunway(v interface{}, unit string) string {
	switch t := v.(type) {
	case float64:
		return fmt.Sprintf("%.1f %s", t, unit)
	case string:
		return mutedStyle.Render("unlimited")
	default:
		return ""
	}
}
