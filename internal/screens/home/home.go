package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/catalog"
	"github.com/abhisek/educareer/internal/oracle"
	"github.com/abhisek/educareer/internal/router"
	"github.com/abhisek/educareer/internal/screen"
	"github.com/abhisek/educareer/internal/screens"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/components"
	"github.com/abhisek/educareer/internal/ui/layout"
	"github.com/abhisek/educareer/internal/ui/theme"
)

// HomeScreen is the landing page. Guests pick a track straight from here.
type HomeScreen struct {
	env  screens.Env
	menu components.Menu
	err  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env screens.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.menu = components.NewMenu(h.items())
	return h
}

// items depends on the session state and language, so it is rebuilt on
// every update.
func (h *HomeScreen) items() []components.MenuItem {
	var items []components.MenuItem

	kind := h.env.Session.Kind()
	if kind == session.KindAnonymous || kind == session.KindBrowsing {
		for _, info := range h.env.Session.Catalog().All() {
			id := info.ID
			items = append(items, components.MenuItem{
				Label:  info.Title.In(h.env.Lang()),
				Action: func() tea.Cmd { return h.choose(id) },
			})
		}
	}

	items = append(items, components.MenuItem{
		Label:  h.env.T("استكشف المسارات", "Explore tracks"),
		Action: func() tea.Cmd { return router.Navigate(session.RouteDiscover) },
	})
	if h.env.Session.User() == nil {
		items = append(items, components.MenuItem{
			Label:  h.env.T("تسجيل الدخول", "Log in"),
			Action: func() tea.Cmd { return router.Navigate(session.RouteAuth) },
		})
	} else if kind == session.KindDashboard || kind == session.KindNoTrack {
		items = append(items, components.MenuItem{
			Label:  h.env.T("لوحة التحكم", "My dashboard"),
			Action: func() tea.Cmd { return router.Navigate(session.RouteDashboard) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  h.env.T("خروج", "Exit"),
		Action: func() tea.Cmd { return tea.Quit },
	})
	return items
}

func (h *HomeScreen) choose(id catalog.Specialization) tea.Cmd {
	if err := h.env.Session.SelectSpecialization(id); err != nil {
		h.err = err.Error()
		return nil
	}
	return router.Navigate(session.RouteAssessment)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	h.menu = h.menu.Rebuild(h.items())

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Highlight).
		Bold(true).
		Render("EduCareer")
	slogan := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render(oracle.Slogan)
	intro := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(h.env.T(
			"اختر مساراً مهنياً وابدأ بمهام عمل حقيقية كل يوم.",
			"Pick a career track and start real work tasks every day.",
		))

	card := components.Card(strings.TrimRight(h.menu.View(), "\n"), cw)
	sections := []string{title, slogan, "", intro, "", card}
	if layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = []string{title, slogan, card}
	}
	if h.err != "" {
		sections = append(sections, "", screens.ErrorLine(h.err))
	}
	return components.Frame(strings.Join(sections, "\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return h.env.T("الرئيسية", "Home")
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: h.env.T("تنقل", "Navigate")},
		{Key: "Enter", Description: h.env.T("اختيار", "Select")},
	}
}
