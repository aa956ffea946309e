package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/ui/theme"
)

const (
	maxContentWidth = 64
	minContentWidth = 24

	// frameChrome is the border plus inner padding of Frame.
	frameChrome = 6
)

// ContentWidth is the width every card inside a Frame is rendered at, so
// stacked sections line up.
func ContentWidth(frameWidth int) int {
	return max(minContentWidth, min(frameWidth-frameChrome, maxContentWidth))
}

// Frame draws the outer double border and centers content in it.
func Frame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card draws a rounded box cw cells wide.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}

// CallToAction renders the primary action of a screen. An inactive one is
// drawn outlined.
func CallToAction(label string, active bool, width int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !active {
		return style.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(label)
	}
	return style.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		BorderForeground(theme.Highlight).
		Render("▸ " + label)
}
