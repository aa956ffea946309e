package auth

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/router"
	"github.com/abhisek/educareer/internal/screen"
	"github.com/abhisek/educareer/internal/screens"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/components"
	"github.com/abhisek/educareer/internal/ui/layout"
	"github.com/abhisek/educareer/internal/ui/theme"
)

const (
	fieldName = iota
	fieldEmail
)

// AuthScreen is the stub login form. Blank fields get default values.
type AuthScreen struct {
	env    screens.Env
	inputs [2]components.TextInput
	focus  int
	err    string
}

var (
	_ screen.Screen          = (*AuthScreen)(nil)
	_ screen.KeyHintProvider = (*AuthScreen)(nil)
	_ screen.BackNavigator   = (*AuthScreen)(nil)
)

// New creates a new AuthScreen with the name field focused.
func New(env screens.Env) *AuthScreen {
	a := &AuthScreen{env: env}
	a.inputs[fieldName] = components.NewTextInput(session.DefaultName, 120)
	a.inputs[fieldEmail] = components.NewTextInput(session.DefaultEmail, 254)
	a.inputs[fieldEmail].Blur()
	return a
}

func (a *AuthScreen) Init() tea.Cmd {
	return a.inputs[a.focus].Init()
}

func (a *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "shift+tab", "up", "down":
			return a, a.toggleFocus()
		case "enter":
			if a.focus == fieldName {
				return a, a.toggleFocus()
			}
			return a, a.submit()
		}
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	return a, cmd
}

func (a *AuthScreen) toggleFocus() tea.Cmd {
	a.inputs[a.focus].Blur()
	a.focus = 1 - a.focus
	return a.inputs[a.focus].Focus()
}

// SetValues fills both fields.
func (a *AuthScreen) SetValues(name, email string) {
	a.inputs[fieldName].SetValue(name)
	a.inputs[fieldEmail].SetValue(email)
}

func (a *AuthScreen) submit() tea.Cmd {
	err := a.env.Session.Authenticate(session.Credentials{
		Name:  a.inputs[fieldName].Value(),
		Email: a.inputs[fieldEmail].Value(),
	})
	if err != nil {
		a.err = err.Error()
		a.inputs[fieldEmail].MarkInvalid()
		return nil
	}
	a.err = ""
	if a.env.Session.Kind() == session.KindInAssessment {
		return router.Navigate(session.RouteAssessment)
	}
	return router.Navigate(session.RouteDashboard)
}

func (a *AuthScreen) View(width, height int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(a.env.T("تسجيل الدخول", "Log in")),
		"",
		label.Render(a.env.T("الاسم", "Name")),
		a.inputs[fieldName].View(),
		"",
		label.Render(a.env.T("البريد الإلكتروني", "Email")),
		a.inputs[fieldEmail].View(),
	}
	if spec, ok := a.env.Session.Pending(); ok {
		if info, err := a.env.Session.Catalog().Lookup(spec); err == nil {
			lines = append(lines, "", theme.Hint.Render(a.env.T("المسار المختار: ", "Selected track: ")+info.Title.In(a.env.Lang())))
		}
	}
	if a.err != "" {
		lines = append(lines, "", screens.ErrorLine(a.err))
	}

	cw := components.ContentWidth(width)
	return screens.Centered(components.Card(strings.Join(lines, "\n"), cw), width, height)
}

func (a *AuthScreen) Title() string {
	return a.env.T("الدخول", "Login")
}

func (a *AuthScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: a.env.T("الحقل التالي", "Next field")},
		{Key: "Enter", Description: a.env.T("دخول", "Continue")},
		{Key: "Esc", Description: a.env.T("رجوع", "Back")},
	}
}

func (a *AuthScreen) Back() session.Route {
	return session.RouteHome
}
