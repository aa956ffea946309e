package app

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/assessment"
	"github.com/abhisek/educareer/internal/logger"
	"github.com/abhisek/educareer/internal/mentor"
	"github.com/abhisek/educareer/internal/router"
	"github.com/abhisek/educareer/internal/screen"
	"github.com/abhisek/educareer/internal/screens"
	"github.com/abhisek/educareer/internal/screens/auth"
	"github.com/abhisek/educareer/internal/screens/dashboard"
	"github.com/abhisek/educareer/internal/screens/discover"
	"github.com/abhisek/educareer/internal/screens/home"
	"github.com/abhisek/educareer/internal/screens/placement"
	"github.com/abhisek/educareer/internal/screens/portfolio"
	"github.com/abhisek/educareer/internal/screens/projects"
	"github.com/abhisek/educareer/internal/screens/tasks"
	"github.com/abhisek/educareer/internal/screens/track"
	"github.com/abhisek/educareer/internal/screens/welcome"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/layout"
)

// Options holds the dependencies injected into the TUI.
type Options struct {
	Session *session.Session
	Mentor  *mentor.Service
	Logger  *logger.Logger

	// SkipWelcome starts on the landing screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    screens.Env
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	env := screens.Env{Session: opts.Session, Mentor: opts.Mentor, Log: log}

	var initial screen.Screen = home.New(env)
	if !opts.SkipWelcome {
		var tracks []string
		for _, info := range env.Session.Catalog().All() {
			tracks = append(tracks, info.Title.In(env.Lang()))
		}
		hint := env.T("اضغط أي مفتاح للمتابعة", "press any key to continue")
		initial = welcome.New(tracks, hint, func() screen.Screen { return home.New(env) })
	}
	return AppModel{
		env:    env,
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case router.NavigateMsg:
		return m, m.navigate(msg.Route)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			lang := m.env.Session.ToggleLanguage()
			m.env.Log.Debug("language toggled", "session_id", m.env.Session.ID(), "lang", lang)
			return m, nil
		case "esc":
			if b, ok := m.router.Active().(screen.BackNavigator); ok {
				return m, router.Navigate(b.Back())
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// navigate resolves r through the session guards and opens the resulting
// screen. Opening the catalog or the login form is itself a session event.
func (m AppModel) navigate(r session.Route) tea.Cmd {
	sess := m.env.Session
	to := sess.Resolve(r)
	if to != r {
		m.env.Log.Debug("route redirected", "session_id", sess.ID(), "from", r.String(), "to", to.String())
	}

	switch to.Page {
	case session.PageDiscover:
		if err := sess.Browse(); err != nil {
			m.env.Log.Warn("browse failed", "session_id", sess.ID(), "error", err)
		}
	case session.PageAuth:
		if err := sess.BeginLogin(); err != nil {
			m.env.Log.Warn("begin login failed", "session_id", sess.ID(), "error", err)
		}
	}

	s := m.screenFor(to)
	if to.Page == session.PageTrack {
		return m.router.Push(s)
	}
	return m.router.Reset(s)
}

func (m AppModel) screenFor(r session.Route) screen.Screen {
	switch r.Page {
	case session.PageDiscover:
		return discover.New(m.env)
	case session.PageTrack:
		return track.New(m.env, r.Track)
	case session.PageAuth:
		return auth.New(m.env)
	case session.PageDashboard:
		return dashboard.New(m.env)
	case session.PageTasks:
		return tasks.New(m.env)
	case session.PageProjects:
		return projects.New(m.env)
	case session.PagePortfolio:
		return portfolio.New(m.env)
	case session.PageAssessment:
		return placement.New(m.env)
	}
	return home.New(m.env)
}

// status is the right side of the header: language plus track and level.
func (m AppModel) status() string {
	lang := m.env.Lang()
	parts := []string{strings.ToUpper(string(lang))}
	if u := m.env.Session.User(); u != nil {
		if info, ok := m.env.Track(); ok {
			parts = append(parts, info.Title.In(lang), assessment.LevelLabel(u.Level, lang))
		} else {
			parts = append(parts, u.Name)
		}
	}
	return strings.Join(parts, " · ")
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(footerHints, p.KeyHints()...)
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{{Key: "Esc", Description: m.env.T("رجوع", "Back")}}
	}
	footerHints = append(footerHints,
		layout.KeyHint{Key: "Ctrl+L", Description: m.env.T("English", "العربية")},
		layout.KeyHint{Key: "Ctrl+C", Description: m.env.T("خروج", "Quit")},
	)

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
