package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vk/footprintgen/internal/driver"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Faint(true).Width(11)
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	summaryCard = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// writeSummary renders the run report as a small card.
func writeSummary(w io.Writer, report *driver.Report, dryRun bool) {
	title := "Footprint generation"
	verb := "generated"
	if dryRun {
		title = "Definition check"
		verb = "validated"
	}

	rows := []string{
		titleStyle.Render(title),
		row("files", report.Files),
		row(verb, report.Generated),
	}
	if n := len(report.Failures); n > 0 {
		rows = append(rows, failStyle.Render(labelStyle.Render("failed")+fmt.Sprint(n)))
		for _, f := range report.Failures {
			rows = append(rows, failStyle.Render(fmt.Sprintf("  %s (%s)", f.Path, f.Kind)))
		}
	}

	fmt.Fprintln(w, summaryCard.Render(strings.Join(rows, "\n")))
}

func row(label string, n int) string {
	return labelStyle.Render(label) + fmt.Sprint(n)
}
