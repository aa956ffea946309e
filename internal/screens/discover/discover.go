package discover

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/router"
	"github.com/abhisek/educareer/internal/screen"
	"github.com/abhisek/educareer/internal/screens"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/components"
	"github.com/abhisek/educareer/internal/ui/layout"
	"github.com/abhisek/educareer/internal/ui/theme"
)

// DiscoverScreen lists the catalog. Enter opens a track's detail page.
type DiscoverScreen struct {
	env    screens.Env
	tracks []catalog.Info
	menu   components.Menu
}

var (
	_ screen.Screen          = (*DiscoverScreen)(nil)
	_ screen.KeyHintProvider = (*DiscoverScreen)(nil)
	_ screen.BackNavigator   = (*DiscoverScreen)(nil)
)

// New creates a new DiscoverScreen.
func New(env screens.Env) *DiscoverScreen {
	d := &DiscoverScreen{env: env, tracks: env.Session.Catalog().All()}
	d.menu = components.NewMenu(d.items())
	return d
}

func (d *DiscoverScreen) items() []components.MenuItem {
	items := make([]components.MenuItem, len(d.tracks))
	for i, info := range d.tracks {
		id := info.ID
		items[i] = components.MenuItem{
			Label:  info.Title.In(d.env.Lang()),
			Action: func() tea.Cmd { return router.Navigate(session.TrackRoute(id)) },
		}
	}
	return items
}

func (d *DiscoverScreen) Init() tea.Cmd {
	return nil
}

func (d *DiscoverScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	d.menu = d.menu.Rebuild(d.items())

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

// Selected returns the highlighted track.
func (d *DiscoverScreen) Selected() catalog.Info {
	return d.tracks[d.menu.Selected]
}

func (d *DiscoverScreen) View(width, height int) string {
	if len(d.tracks) == 0 {
		return screens.Centered(d.env.T("لا توجد مسارات", "No tracks available"), width, height)
	}
	lang := d.env.Lang()

	listWidth := width / 3
	list := lipgloss.NewStyle().
		Width(listWidth).
		Render(d.menu.View())

	info := d.Selected()
	detailWidth := width - listWidth - 4
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(info.Title.In(lang))
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(detailWidth).Render(info.Description.In(lang))
	demand := lipgloss.NewStyle().Foreground(theme.Secondary).Width(detailWidth).
		Render(d.env.T("الطلب في 2026: ", "Demand in 2026: ") + info.Demand2026.In(lang))
	skills := lipgloss.NewStyle().Foreground(theme.TextDim).Width(detailWidth).
		Render(strings.Join(info.Skills, " · "))

	detail := lipgloss.NewStyle().
		Width(detailWidth).
		Padding(0, 2).
		Render(strings.Join([]string{heading, "", body, "", demand, "", skills}, "\n"))

	return lipgloss.NewStyle().
		Padding(1, 1).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, list, detail))
}

func (d *DiscoverScreen) Title() string {
	return d.env.T("استكشف المسارات", "Discover Tracks")
}

func (d *DiscoverScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: d.env.T("تنقل", "Navigate")},
		{Key: "Enter", Description: d.env.T("التفاصيل", "Details")},
		{Key: "Esc", Description: d.env.T("رجوع", "Back")},
	}
}

func (d *DiscoverScreen) Back() session.Route {
	return session.RouteHome
}
