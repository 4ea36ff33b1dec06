package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var flagLimit int

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"txns"},
	Short:   "Show recent spending",
	RunE:    runTransactions,
}

var transactionsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a logged transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTransactionsRm,
}

func init() {
	transactionsCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "how many entries to show")
	transactionsCmd.AddCommand(transactionsRmCmd)
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactions(_ *cobra.Command, _ []string) error {
	var out struct {
		Items []struct {
			ID          uint      `json:"id"`
			Date        time.Time `json:"date"`
			Amount      float64   `json:"amount"`
			Description string    `json:"description"`
			Category    string    `json:"category"`
			IsIncome    bool      `json:"is_income"`
		} `json:"items"`
		TotalSpent float64 `json:"total_spent"`
	}
	if err := client().Get(fmt.Sprintf("/api/transactions?limit=%d", flagLimit), &out); err != nil {
		return err
	}

	if len(out.Items) == 0 {
		fmt.Println("\n  Nothing logged yet. Use `numberctl spend` after a purchase.")
		return nil
	}

	rows := make([][]string, 0, len(out.Items))
	for _, t := range out.Items {
		amount := FormatMoney(t.Amount)
		if t.IsIncome {
			amount = goodStyle.Render("+" + amount)
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(t.ID), 10),
			t.Date.Local().Format("2006-01-02"),
			amount,
			t.Description,
			t.Category,
		})
	}

	fmt.Println()
	fmt.Print(RenderTable(Table{
		Title:   "RECENT TRANSACTIONS",
		Headers: []string{"ID", "Date", "Amount", "Description", "Category"},
		Rows:    rows,
	}))
	fmt.Printf("\n  Spent: %s\n", FormatMoney(out.TotalSpent))
	return nil
}

func runTransactionsRm(_ *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", args[0])
	}

	if err := client().Delete(fmt.Sprintf("/api/transactions/%d", id)); err != nil {
		return err
	}

	fmt.Println("\n  Deleted.")
	return nil
}
