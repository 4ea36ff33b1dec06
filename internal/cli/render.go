package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors
var (
	colorBorder = lipgloss.Color("#282726")
	colorText   = lipgloss.Color("#FFFCF0")
	colorMuted  = lipgloss.Color("#6F6E69")
	colorGreen  = lipgloss.Color("#879A39")
	colorRed    = lipgloss.Color("#D14D41")
	colorYellow = lipgloss.Color("#D0A215")
	colorAccent = lipgloss.Color("#3AA99F")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	goodStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	badStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorYellow)
)

// FormatMoney renders a dollar amount with two decimals.
func FormatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// RenderNumber draws the headline box: what's left to spend today.
func RenderNumber(date string, remaining, dailyLimit, spentToday float64, overBudget bool) string {
	amount := goodStyle.Render(FormatMoney(remaining))
	if overBudget {
		amount = badStyle.Render(FormatMoney(remaining))
	}

	lines := []string{
		titleStyle.Render("THE NUMBER"),
		mutedStyle.Render(date),
		"",
		amount,
		"",
		mutedStyle.Render(fmt.Sprintf("limit %s   spent %s",
			FormatMoney(dailyLimit), FormatMoney(spentToday))),
	}
	if overBudget {
		lines = append(lines, warnStyle.Render("over budget for today"))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(40).
		Align(lipgloss.Center).
		Padding(1, 2)

	return box.Render(strings.Join(lines, "\n"))
}

// Table is a simple aligned text table.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTable renders headers and rows with padded columns.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	if len(t.Headers) > 0 {
		cells := make([]string, numCols)
		for i, h := range t.Headers {
			cells[i] = fmt.Sprintf("%-*s", widths[i], h)
		}
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(strings.Join(cells, "  ")))
		b.WriteString("\n")
	}

	for _, row := range t.Rows {
		cells := make([]string, numCols)
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		b.WriteString("  ")
		b.WriteString(strings.Join(cells, "  "))
		b.WriteString("\n")
	}

	return b.String()
}

// RenderKV renders aligned key/value lines for detail views.
func RenderKV(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%-*s", width, p[0])))
		b.WriteString("  ")
		b.WriteString(p[1])
		b.WriteString("\n")
	}
	return b.String()
}
