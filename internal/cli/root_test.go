package cli

import (
	"strings"
	"testing"
)

func TestRootCommandRunsNumberByDefault(t *testing.T) {
	if rootCmd.RunE == nil {
		t.Fatal("root command has no run function; bare `numberctl` should show the number")
	}
	if f := rootCmd.PersistentFlags().Lookup("server"); f == nil {
		t.Fatal("missing persistent --server flag")
	}
}

func TestRootCommandHasAllSubcommands(t *testing.T) {
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, want := range []string{
		"number", "configure", "setup",
		"login", "register",
		"expense", "spend", "transactions", "backup",
	} {
		if !registered[want] {
			t.Errorf("subcommand %q not registered", want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(1234.5); got != "$1234.50" {
		t.Errorf("FormatMoney(1234.5) = %q", got)
	}
	if got := FormatMoney(0); got != "$0.00" {
		t.Errorf("FormatMoney(0) = %q", got)
	}
}

func TestFormatRunway(t *testing.T) {
	if got := formatRunway(12.5, "days"); got != "12.5 days" {
		t.Errorf("finite runway = %q", got)
	}
	// the server encodes an unbounded runway as a JSON string
	if got := formatRunway("unbounded", "days"); !strings.Contains(got, "unlimited") {
		t.Errorf("unbounded runway = %q, want it rendered as unlimited", got)
	}
	if got := formatRunway(nil, "days"); got != "" {
		t.Errorf("missing runway = %q, want empty", got)
	}
}
