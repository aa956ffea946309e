package dashboard

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/router"
	"github.com/abhisek/educareer/internal/screen"
	"github.com/abhisek/educareer/internal/screens"
	"github.com/abhisek/educareer/internal/screens/chat"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/components"
	"github.com/abhisek/educareer/internal/ui/layout"
	"github.com/abhisek/educareer/internal/ui/theme"
)

// DashboardScreen is the learner's home once logged in.
type DashboardScreen struct {
	env  screens.Env
	menu components.Menu
	err  string
}

var (
	_ screen.Screen          = (*DashboardScreen)(nil)
	_ screen.KeyHintProvider = (*DashboardScreen)(nil)
)

// New creates a new DashboardScreen.
func New(env screens.Env) *DashboardScreen {
	d := &DashboardScreen{env: env}
	d.menu = components.NewMenu(d.items())
	return d
}

func (d *DashboardScreen) placed() bool {
	_, ok := d.env.Track()
	return ok && d.env.Session.Kind() == session.KindDashboard
}

func (d *DashboardScreen) items() []components.MenuItem {
	t := d.env.T
	var items []components.MenuItem
	if d.placed() {
		items = append(items,
			components.MenuItem{Label: t("مهمة اليوم", "Today's task"), Action: func() tea.Cmd {
				return router.Navigate(session.Route{Page: session.PageTasks})
			}},
			components.MenuItem{Label: t("المرشد الذكي", "AI mentor"), Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: chat.New(d.env)} }
			}},
			components.MenuItem{Label: t("المشاريع العملية", "Projects"), Action: func() tea.Cmd {
				return router.Navigate(session.Route{Page: session.PageProjects})
			}},
			components.MenuItem{Label: t("ملف الإنجازات", "Portfolio"), Action: func() tea.Cmd {
				return router.Navigate(session.Route{Page: session.PagePortfolio})
			}},
			components.MenuItem{Label: t("إعادة التقييم", "Retake placement"), Action: d.retake},
			components.MenuItem{Label: t("تغيير المسار", "Switch track"), Action: func() tea.Cmd {
				return router.Navigate(session.RouteDiscover)
			}},
		)
	} else {
		items = append(items,
			components.MenuItem{Label: t("اختر مساراً", "Choose a track"), Action: func() tea.Cmd {
				return router.Navigate(session.RouteDiscover)
			}},
			components.MenuItem{Label: t("ملف الإنجازات", "Portfolio"), Action: func() tea.Cmd {
				return router.Navigate(session.Route{Page: session.PagePortfolio})
			}},
		)
	}
	items = append(items, components.MenuItem{Label: t("تسجيل الخروج", "Log out"), Action: d.logout})
	return items
}

func (d *DashboardScreen) retake() tea.Cmd {
	err := d.env.Session.Retake()
	var guard *session.GuardError
	switch {
	case errors.As(err, &guard):
		return router.Navigate(guard.Redirect)
	case err != nil:
		d.err = err.Error()
		return nil
	}
	return router.Navigate(session.RouteAssessment)
}

func (d *DashboardScreen) logout() tea.Cmd {
	id := d.env.Session.ID()
	if err := d.env.Session.Logout(); err != nil {
		d.err = err.Error()
		return nil
	}
	d.env.Mentor.Forget(id)
	return router.Navigate(session.RouteHome)
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	d.menu = d.menu.Rebuild(d.items())

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) View(width, height int) string {
	u := d.env.Session.User()
	if u == nil {
		return screens.Centered(theme.Hint.Render(d.env.T("يرجى تسجيل الدخول", "Please log in")), width, height)
	}
	lang := d.env.Lang()
	cw := components.ContentWidth(width)

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(d.env.T("مرحباً، ", "Welcome, ") + u.Name),
	}

	if info, ok := d.env.Track(); ok {
		lines = append(lines,
			fmt.Sprintf("%s · %s", info.Title.In(lang), assessment.LevelLabel(u.Level, lang)),
		)
		if u.AssessmentScore != nil {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("%s %d/%d", d.env.T("نتيجة التقييم:", "Placement score:"), *u.AssessmentScore, assessment.QuestionCount)))
		}
		portfolio := session.BuildPortfolio(u, d.env.Session.Catalog(), lang)
		lines = append(lines, "", components.Meter{
			Label:       d.env.T("البرنامج", "Program"),
			Done:        portfolio.CompletionPercent,
			Total:       100,
			ShowPercent: true,
		}.Render(cw))

		if mods := d.env.Session.Catalog().ModulesFor(info.ID, u.Level); len(mods) > 0 {
			lines = append(lines, "", theme.Hint.Render(d.env.T("وحدات مستواك:", "Your level modules:")))
			for _, m := range mods {
				lines = append(lines, "  • "+m)
			}
		}
	} else {
		lines = append(lines, theme.Hint.Render(d.env.T("لم تختر مساراً بعد.", "You have not picked a track yet.")))
	}

	lines = append(lines, "", strings.TrimRight(d.menu.View(), "\n"))
	if d.err != "" {
		lines = append(lines, "", screens.ErrorLine(d.err))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(lines, "\n"))
}

func (d *DashboardScreen) Title() string {
	return d.env.T("لوحة التحكم", "Dashboard")
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: d.env.T("تنقل", "Navigate")},
		{Key: "Enter", Description: d.env.T("اختيار", "Select")},
	}
}
