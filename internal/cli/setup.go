package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-run walkthrough: budget mode, then monthly expenses",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func promptFloat(label string) (float64, error) {
	line, err := promptLine(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", line)
	}
	return v, nil
}

func promptInt(label string) (int, error) {
	line, err := promptLine(label)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", line)
	}
	return v, nil
}

func runSetup(cmd *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Println("  Let's set up your budget.")
	fmt.Println()
	fmt.Println("  1) paycheck   - money arrives on a schedule")
	fmt.Println("  2) fixed pool - a pot of money, no income in sight")
	fmt.Println()

	choice, err := promptLine("mode [1/2]: ")
	if err != nil {
		return err
	}

	body := map[string]interface{}{}
	switch choice {
	case "1", "paycheck":
		body["mode"] = "paycheck"
		income, err := promptFloat("monthly income: ")
		if err != nil {
			return err
		}
		days, err := promptInt("days until next paycheck: ")
		if err != nil {
			return err
		}
		body["monthly_income"] = income
		body["days_until_paycheck"] = days

	case "2", "fixed_pool", "pool":
		body["mode"] = "fixed_pool"
		total, err := promptFloat("total money available: ")
		if err != nil {
			return err
		}
		body["total_money"] = total

		until, err := promptLine("make it last until (YYYY-MM-DD, blank to skip): ")
		if err != nil {
			return err
		}
		if until != "" {
			body["target_end_date"] = until
		} else {
			limit, err := promptLine("daily spending cap (blank to skip): ")
			if err != nil {
				return err
			}
			if limit != "" {
				v, err := strconv.ParseFloat(limit, 64)
				if err != nil {
					return fmt.Errorf("invalid number %q", limit)
				}
				body["daily_spending_limit"] = v
			}
		}

	default:
		return fmt.Errorf("pick 1 or 2")
	}

	if err := client().Post("/api/budget/configure", body, nil); err != nil {
		return err
	}

	// recurring bills, one per line, blank to finish
	fmt.Println()
	fmt.Println("  Now your recurring monthly expenses (rent, phone, ...).")
	fmt.Println("  Blank name to finish.")
	fmt.Println()
	for {
		name, err := promptLine("expense name: ")
		if err != nil {
			return err
		}
		if name == "" {
			break
		}
		amount, err := promptFloat("amount per month: ")
		if err != nil {
			fmt.Printf("  %v, try again\n", err)
			continue
		}
		if err := client().Post("/api/expenses", map[string]interface{}{
			"name":   name,
			"amount": amount,
		}, nil); err != nil {
			return err
		}
		fmt.Printf("  added %s (%s)\n", name, FormatMoney(amount))
	}

	fmt.Println()
	fmt.Println("  All set. Here's today's number:")
	return runNumber(cmd, nil)
}
