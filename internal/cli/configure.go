package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagMode       string
	flagIncome     float64
	flagDays       int
	flagTotal      float64
	flagTargetDate string
	flagDailyLimit float64
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set up or change the budget",
	Long: `Set up the budget behind the number.

Paycheck mode: money arrives on a schedule.
  numberctl configure --mode paycheck --income 3000 --days 15

Fixed pool mode: a pot of money with no income in sight.
  numberctl configure --mode fixed_pool --total 1200
  numberctl configure --mode fixed_pool --total 1200 --until 2026-10-01
  numberctl configure --mode fixed_pool --total 1200 --limit 25

--until and --limit are mutually exclusive refinements.`,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().StringVar(&flagMode, "mode", "", "budget mode: paycheck or fixed_pool")
	configureCmd.Flags().Float64Var(&flagIncome, "income", 0, "monthly income (paycheck mode)")
	configureCmd.Flags().IntVar(&flagDays, "days", 0, "days until next paycheck (paycheck mode)")
	configureCmd.Flags().Float64Var(&flagTotal, "total", 0, "total money available (fixed pool mode)")
	configureCmd.Flags().StringVar(&flagTargetDate, "until", "", "make the money last until this date, YYYY-MM-DD")
	configureCmd.Flags().Float64Var(&flagDailyLimit, "limit", 0, "self-imposed daily spending cap")
	_ = configureCmd.MarkFlagRequired("mode")
	configureCmd.MarkFlagsMutuallyExclusive("until", "limit")

	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	body := map[string]interface{}{"mode": flagMode}

	switch flagMode {
	case "paycheck":
		body["monthly_income"] = flagIncome
		body["days_until_paycheck"] = flagDays
	case "fixed_pool":
		body["total_money"] = flagTotal
		if flagTargetDate != "" {
			body["target_end_date"] = flagTargetDate
		}
		if cmd.Flags().Changed("limit") {
			body["daily_spending_limit"] = flagDailyLimit
		}
	default:
		return fmt.Errorf("mode must be paycheck or fixed_pool")
	}

	if err := client().Post("/api/budget/configure", body, nil); err != nil {
		return err
	}

	fmt.Println("\n  Budget configured. Run `numberctl` to see today's number.")
	return nil
}
