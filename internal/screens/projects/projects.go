package projects

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/screen"
	"github.com/abhisek/educareer/internal/screens"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/theme"
)

// ProjectsScreen lists the practical projects and their unlock state.
type ProjectsScreen struct {
	env screens.Env
}

var (
	_ screen.Screen        = (*ProjectsScreen)(nil)
	_ screen.BackNavigator = (*ProjectsScreen)(nil)
)

// New creates a new ProjectsScreen.
func New(env screens.Env) *ProjectsScreen {
	return &ProjectsScreen{env: env}
}

func (p *ProjectsScreen) Init() tea.Cmd                           { return nil }
func (p *ProjectsScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }

func (p *ProjectsScreen) View(width, height int) string {
	u := p.env.Session.User()
	if u == nil {
		return screens.Centered(theme.Hint.Render(p.env.T("يرجى تسجيل الدخول", "Please log in")), width, height)
	}
	lang := p.env.Lang()
	w := min(width-6, 90)

	var cards []string
	for _, pr := range session.Projects(u) {
		status := lipgloss.NewStyle().Foreground(theme.Success).Render("✓ " + p.env.T("متاح", "Unlocked"))
		border := theme.Success
		if !pr.Unlocked {
			status = lipgloss.NewStyle().Foreground(theme.TextDim).Render("🔒 " + pr.Requirement.In(lang))
			border = theme.Border
		}
		kind := p.env.T("فردي", "Individual")
		if pr.Kind == session.ProjectGroup {
			kind = p.env.T("جماعي", "Group")
		}
		body := strings.Join([]string{
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(pr.Title.In(lang)) + "  " + theme.Hint.Render(kind),
			lipgloss.NewStyle().Foreground(theme.Text).Width(w - 4).Render(pr.Description.In(lang)),
			status,
		}, "\n")
		cards = append(cards, lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(w).
			Render(body))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(cards, "\n"))
}

func (p *ProjectsScreen) Title() string {
	return p.env.T("المشاريع العملية", "Projects")
}

func (p *ProjectsScreen) Back() session.Route {
	return session.RouteDashboard
}
