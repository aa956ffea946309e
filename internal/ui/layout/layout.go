// Package layout draws the chrome around every screen: the header bar,
// the key hint footer and the too-small notice.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	// Below this height screens drop their decorative lines.
	CompactHeightThreshold = 30

	brand = "EduCareer"
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a larger terminal in both languages.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf(
			"Please enlarge the terminal to %[1]d x %[2]d\nيرجى تكبير النافذة إلى %[1]d x %[2]d\n\n%[3]d x %[4]d",
			MinWidth, MinHeight, width, height,
		))
}

// bar draws one full-width rounded strip.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader places the brand left, title centered and status right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true).Render("  " + brand)
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Secondary).Render(status)

	inner := max(width-4, 0)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)

	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

// RenderFooter lists the key hints.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, content and footer, giving content whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return strings.Join([]string{
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	}, "\n")
}
