package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var flagFixed bool

var expenseCmd = &cobra.Command{
	Use:   "expense",
	Short: "Manage recurring monthly expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Add a recurring expense",
	Args:  cobra.ExactArgs(2),
	RunE:  runExpenseAdd,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring expenses",
	RunE:  runExpenseList,
}

var expenseRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a recurring expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseRm,
}

func init() {
	expenseAddCmd.Flags().BoolVar(&flagFixed, "fixed", false, "mark as a fixed bill rather than an estimate")
	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseRmCmd)
	rootCmd.AddCommand(expenseCmd)
}

func runExpenseAdd(_ *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}

	var out struct {
		Expense struct {
			ID     uint    `json:"id"`
			Name   string  `json:"name"`
			Amount float64 `json:"amount"`
		} `json:"expense"`
	}
	if err := client().Post("/api/expenses", map[string]interface{}{
		"name":     args[0],
		"amount":   amount,
		"is_fixed": flagFixed,
	}, &out); err != nil {
		return err
	}

	fmt.Printf("\n  Added %s (%s), id %d.\n",
		out.Expense.Name, FormatMoney(out.Expense.Amount), out.Expense.ID)
	return nil
}

func runExpenseList(_ *cobra.Command, _ []string) error {
	var out struct {
		Items []struct {
			ID      uint    `json:"id"`
			Name    string  `json:"name"`
			Amount  float64 `json:"amount"`
			IsFixed bool    `json:"is_fixed"`
		} `json:"items"`
		MonthlyTotal float64 `json:"monthly_total"`
	}
	if err := client().Get("/api/expenses", &out); err != nil {
		return err
	}

	if len(out.Items) == 0 {
		fmt.Println("\n  No recurring expenses yet. Add one with `numberctl expense add`.")
		return nil
	}

	rows := make([][]string, 0, len(out.Items))
	for _, e := range out.Items {
		kind := "estimate"
		if e.IsFixed {
			kind = "fixed"
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Name,
			FormatMoney(e.Amount),
			kind,
		})
	}

	fmt.Println()
	fmt.Print(RenderTable(Table{
		Title:   "MONTHLY EXPENSES",
		Headers: []string{"ID", "Name", "Amount", "Kind"},
		Rows:    rows,
	}))
	fmt.Printf("\n  Total: %s per month\n", FormatMoney(out.MonthlyTotal))
	return nil
}

func runExpenseRm(_ *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", args[0])
	}

	if err := client().Delete(fmt.Sprintf("/api/expenses/%d", id)); err != nil {
		return err
	}

	fmt.Println("\n  Removed.")
	return nil
}
