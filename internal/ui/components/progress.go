package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/ui/theme"
)

const minBarWidth = 4

// Meter is a labelled horizontal bar for a done/total count.
type Meter struct {
	Label string
	Done  int
	Total int

	// ShowPercent appends the rounded percentage.
	ShowPercent bool
}

// Ratio is Done over Total, clamped to [0, 1]. A zero Total reads as empty.
func (m Meter) Ratio() float64 {
	if m.Total <= 0 {
		return 0
	}
	return max(0, min(1, float64(m.Done)/float64(m.Total)))
}

// Render draws the meter in width cells.
func (m Meter) Render(width int) string {
	var b strings.Builder
	if m.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label))
		b.WriteString("  ")
	}

	suffix := ""
	if m.ShowPercent {
		suffix = fmt.Sprintf("  %3d%%", int(m.Ratio()*100+0.5))
	}

	bar := max(width-lipgloss.Width(b.String())-lipgloss.Width(suffix), minBarWidth)
	filled := int(float64(bar) * m.Ratio())

	b.WriteString(lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", bar-filled)))
	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}
