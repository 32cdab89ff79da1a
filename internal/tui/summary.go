package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SummaryRow struct {
	Label string
	Value string
}

// RenderSummary draws a two-column table of run statistics.
func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		lines = append(lines, fmt.Sprintf("%s | %s", summaryLabelStyle.Render(label), summaryValueStyle.Render(value)))
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// RenderFailures draws the capped failed-file list: one bullet per name
// plus an overflow line when more failures exist than are shown.
func RenderFailures(names []string, overflow int) string {
	if len(names) == 0 {
		return ""
	}

	lines := []string{failHeaderStyle.Render("Failed files:")}
	for _, name := range names {
		lines = append(lines, "  "+failBulletStyle.Render("-")+" "+failNameStyle.Render(name))
	}
	if overflow > 0 {
		lines = append(lines, "  "+failDimStyle.Render(fmt.Sprintf("... and %d more", overflow)))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	summaryLabelStyle = lipgloss.NewStyle().Foreground(ColorDim)
	summaryValueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	failHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)
	failNameStyle     = lipgloss.NewStyle().Foreground(ColorInk)
	failBulletStyle   = lipgloss.NewStyle().Foreground(ColorDim)
	failDimStyle      = lipgloss.NewStyle().Foreground(ColorDim)
)
