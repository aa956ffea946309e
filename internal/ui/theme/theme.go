// Package theme holds the EduCareer palette and the few shared styles
// built on it.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Navy and gold follow the EduCareer brand; the rest are
// semantic.
var (
	Primary   = lipgloss.Color("#2563EB") // royal blue
	Secondary = lipgloss.Color("#0EA5A4") // teal, section headings
	Accent    = lipgloss.Color("#F59E0B") // amber, needs-work scores
	Highlight = lipgloss.Color("#EAB308") // brand gold
	Success   = lipgloss.Color("#16A34A")
	Error     = lipgloss.Color("#DC2626")

	Text    = lipgloss.Color("#F1F5F9")
	TextDim = lipgloss.Color("#94A3B8")
	Border  = lipgloss.Color("#334155")
	BgDark  = lipgloss.Color("#0B1220")
	BgCard  = lipgloss.Color("#16213A")
)

var (
	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Selected = lipgloss.NewStyle().
			Foreground(Highlight).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)
)

// PassingScore is the review score at or above which work reads as done.
const PassingScore = 80

// ScoreStyle colors a 0..100 review score.
func ScoreStyle(score float64) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch {
	case score >= PassingScore:
		return s.Foreground(Success)
	case score >= 50:
		return s.Foreground(Accent)
	}
	return s.Foreground(Error)
}
