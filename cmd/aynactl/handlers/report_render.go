package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayna/aynactl/internal/deploy"
)

// reportDurationUnit keeps durations readable in the summary.
const reportDurationUnit = 10 * time.Millisecond

var (
	reportColorGreen = lipgloss.Color("#22c55e")
	reportColorRed   = lipgloss.Color("#ef4444")
	reportColorAmber = lipgloss.Color("#f59e0b")
	reportColorDim   = lipgloss.Color("#6b7280")
	reportColorWhite = lipgloss.Color("#f9fafb")
)

var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(reportColorWhite)

	reportDimStyle = lipgloss.NewStyle().
			Foreground(reportColorDim)

	reportGreenStyle = lipgloss.NewStyle().
				Foreground(reportColorGreen)

	reportRedStyle = lipgloss.NewStyle().
			Foreground(reportColorRed)

	reportAmberStyle = lipgloss.NewStyle().
				Foreground(reportColorAmber)
)

// renderReport produces a lipgloss-styled deployment summary string.
func renderReport(project string, report *deploy.Report) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(reportTitleStyle.Render(fmt.Sprintf("  aynactl deploy: %s (%s)", project, report.Environment)))
	b.WriteString("\n")
	b.WriteString(reportDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	b.WriteString("    Outcome:   ")
	b.WriteString(renderOutcome(report.Outcome))
	b.WriteString("\n")

	if report.Version > 0 {
		b.WriteString(fmt.Sprintf("    Deployed:  v%d\n", report.Version))
	}
	if report.ActiveVersion > 0 {
		b.WriteString(fmt.Sprintf("    Active:    v%d\n", report.ActiveVersion))
	}
	if report.RolledBack {
		b.WriteString("    Rollback:  ")
		b.WriteString(reportAmberStyle.Render("previous release restored"))
		b.WriteString("\n")
	}
	if report.Pruned > 0 {
		b.WriteString(fmt.Sprintf("    Pruned:    %d old release(s)\n", report.Pruned))
	}
	b.WriteString(fmt.Sprintf("    Duration:  %s\n", report.Duration.Round(reportDurationUnit)))

	return b.String()
}

func renderOutcome(outcome deploy.Outcome) string {
	switch outcome {
	case deploy.OutcomeSuccess:
		return reportGreenStyle.Render(string(outcome))
	case deploy.OutcomeRolledBack:
		return reportAmberStyle.Render(string(outcome))
	default:
		return reportRedStyle.Render(string(outcome))
	}
}
