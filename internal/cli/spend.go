package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagCategory string
	flagDate     string
)

var spendCmd = &cobra.Command{
	Use:   "spend <amount> <description...>",
	Short: "Log a purchase and see what's left",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSpend,
}

func init() {
	spendCmd.Flags().StringVarP(&flagCategory, "category", "c", "", "category label (\"income\" logs money in)")
	spendCmd.Flags().StringVarP(&flagDate, "date", "d", "", "backdate the entry, YYYY-MM-DD")
	rootCmd.AddCommand(spendCmd)
}

func runSpend(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[0])
	}
	description := strings.Join(args[1:], " ")

	body := map[string]interface{}{
		"amount":      amount,
		"description": description,
		"category":    flagCategory,
	}
	if flagDate != "" {
		body["date"] = flagDate
	}

	if err := client().Post("/api/transactions", body, nil); err != nil {
		return err
	}

	fmt.Printf("\n  Logged %s for %q.\n", FormatMoney(amount), description)

	// show the updated number right away, unless backdated
	if flagDate == "" {
		return runNumber(cmd, nil)
	}
	return nil
}
