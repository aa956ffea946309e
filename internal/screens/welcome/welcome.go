// Package welcome is the splash shown when the TUI starts.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/oracle"
	"github.com/abhisek/educareer/internal/router"
	"github.com/abhisek/educareer/internal/screen"
	"github.com/abhisek/educareer/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond

	// bannerAt reveals the banner and slogan; tracks then appear one per
	// trackStep. The splash moves on by itself at autoAdvance.
	bannerAt    = 600 * time.Millisecond
	trackStep   = 300 * time.Millisecond
	autoAdvance = 6 * time.Second
)

const capArt = `        ▄▄▄▄▄▄▄
   ▄▄▀▀▀       ▀▀▀▄▄
 ▀▀▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▀▀
     █▀▀▀▀▀▀▀▀▀▀▀█   ▌
     ▀▄▄▄▄▄▄▄▄▄▄▄▀   ▀`

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// WelcomeScreen reveals the brand and the track list, then replaces
// itself with the screen next builds. Any key skips ahead.
type WelcomeScreen struct {
	next   func() screen.Screen
	tracks []string
	hint   string

	elapsed time.Duration
	done    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a splash listing tracks. hint is the localized skip prompt.
func New(tracks []string, hint string, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next, tracks: tracks, hint: hint}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.elapsed >= autoAdvance {
			return w, w.finish()
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.finish()
	}
	return w, nil
}

// finish emits the replacement once; later calls are no-ops.
func (w *WelcomeScreen) finish() tea.Cmd {
	if w.done {
		return nil
	}
	w.done = true
	s := w.next()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
}

// visibleTracks is how many track names the animation has reached.
func (w *WelcomeScreen) visibleTracks() int {
	if w.elapsed < bannerAt {
		return 0
	}
	return min(len(w.tracks), int((w.elapsed-bannerAt)/trackStep)+1)
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{lipgloss.NewStyle().Foreground(theme.Highlight).Render(capArt)}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(oracle.Slogan),
			"",
		)
		names := lipgloss.NewStyle().Foreground(theme.Secondary)
		shown := make([]string, 0, len(w.tracks))
		for _, t := range w.tracks[:w.visibleTracks()] {
			shown = append(shown, names.Render(t))
		}
		sections = append(sections, strings.Join(shown, "  ·  "))
	}

	if w.visibleTracks() == len(w.tracks) && w.elapsed >= bannerAt {
		sections = append(sections, "", theme.Hint.Render(w.hint))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
