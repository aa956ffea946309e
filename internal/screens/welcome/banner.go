package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/ui/theme"
)

const bannerArt = `
  ___    _       ___
 | __|__| |_  _ / __|__ _ _ _ ___ ___ _ _
 | _|/ _` + "`" + ` | || | (__/ _` + "`" + ` | '_/ -_) -_) '_|
 |___\__,_|\_,_|\___\__,_|_| \___\___|_|`

const (
	bannerCompact = "E D U C A R E E R"

	// bannerWidth is the widest line of bannerArt plus a margin.
	bannerWidth = 46
)

// RenderBanner draws the wordmark, falling back to spaced letters on
// narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
