package cli

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagServer string
	apiClient  *Client
)

var rootCmd = &cobra.Command{
	Use:   "numberctl",
	Short: "The Number - how much you can spend today",
	Long:  "Terminal client for The Number: a single daily spending allowance computed from your budget, bills and what you've already spent.",
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// .env can carry TN_SERVER for local setups
	_ = godotenv.Load()

	defaultServer := os.Getenv("TN_SERVER")
	if defaultServer == "" {
		defaultServer = "http://127.0.0.1:8080"
	}

	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", defaultServer, "API server base URL")

	// assigned here, not in the literal: runNumber reaches back to
	// rootCmd through client(), which would otherwise be an
	// initialization cycle
	rootCmd.RunE = runNumber
}

// client builds the API client from the saved session, honoring a
// --server override.
func client() *Client {
	if apiClient != nil {
		return apiClient
	}

	baseURL, token := LoadSession()
	if flagServer != "" && !rootCmd.PersistentFlags().Lookup("server").Changed && baseURL != "" {
		// saved session wins unless --server was given explicitly
		flagServer = baseURL
	}
	apiClient = NewClient(flagServer, token)
	return apiClient
}
