// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/khadim210/WolumaProject-sub000/internal/model"
	"github.com/khadim210/WolumaProject-sub000/internal/scoring"
	"github.com/khadim210/WolumaProject-sub000/internal/stats"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#5B8DEF")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	// TableCellStyle formats table cells with appropriate padding.
	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠"
	InfoIcon    = "ℹ"
)

// statusStyles colors each pipeline status for listings.
var statusStyles = map[model.ProjectStatus]lipgloss.Style{
	model.StatusDraft:         SubtleStyle,
	model.StatusSubmitted:     InfoStyle,
	model.StatusEligible:      SuccessStyle,
	model.StatusIneligible:    WarningStyle,
	model.StatusUnderReview:   InfoStyle,
	model.StatusPreSelected:   WarningStyle,
	model.StatusSelected:      SuccessStyle,
	model.StatusRejected:      ErrorStyle,
	model.StatusFormalization: InfoStyle,
	model.StatusFinanced:      SuccessStyle,
	model.StatusMonitoring:    InfoStyle,
	model.StatusClosed:        SubtleStyle,
}

// RenderStatus renders a project status with its pipeline color.
func RenderStatus(status model.ProjectStatus) string {
	style, ok := statusStyles[status]
	if !ok {
		style = SubtleStyle
	}
	return style.Render(string(status))
}

// RenderScore renders a total score colored by decision band.
func RenderScore(total float64) string {
	text := fmt.Sprintf("%.0f", total)
	switch {
	case total >= scoring.SelectedThreshold:
		return SuccessStyle.Render(text)
	case total >= scoring.PreSelectedThreshold:
		return WarningStyle.Render(text)
	default:
		return ErrorStyle.Render(text)
	}
}

// RenderRisk renders a risk flag with a level-appropriate color.
func RenderRisk(risk stats.Risk) string {
	var style lipgloss.Style
	switch risk.Level {
	case stats.RiskHigh:
		style = ErrorStyle
	case stats.RiskMedium:
		style = WarningStyle
	default:
		style = SubtleStyle
	}
	return style.Render(fmt.Sprintf("[%s] %s: %s", risk.Level, risk.Title, risk.Description))
}
