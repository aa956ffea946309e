package portfolio

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/screen"
	"github.com/abhisek/educareer/internal/screens"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/components"
	"github.com/abhisek/educareer/internal/ui/layout"
	"github.com/abhisek/educareer/internal/ui/theme"
)

// PortfolioScreen summarizes the learner's completed work.
type PortfolioScreen struct {
	env screens.Env
}

var (
	_ screen.Screen          = (*PortfolioScreen)(nil)
	_ screen.KeyHintProvider = (*PortfolioScreen)(nil)
	_ screen.BackNavigator   = (*PortfolioScreen)(nil)
)

// New creates a new PortfolioScreen.
func New(env screens.Env) *PortfolioScreen {
	return &PortfolioScreen{env: env}
}

func (p *PortfolioScreen) Init() tea.Cmd                           { return nil }
func (p *PortfolioScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }

func (p *PortfolioScreen) View(width, height int) string {
	u := p.env.Session.User()
	if u == nil {
		return screens.Centered(theme.Hint.Render(p.env.T("يرجى تسجيل الدخول", "Please log in")), width, height)
	}
	pf := session.BuildPortfolio(u, p.env.Session.Catalog(), p.env.Lang())
	cw := components.ContentWidth(width)

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(pf.Name),
		theme.Hint.Render(pf.Email),
		"",
	}
	if pf.TrackTitle != "" {
		lines = append(lines, fmt.Sprintf("%s · %s", pf.TrackTitle, pf.LevelLabel))
	}
	lines = append(lines,
		fmt.Sprintf("%s %d/10", p.env.T("نتيجة التقييم:", "Placement score:"), pf.AssessmentScore),
		fmt.Sprintf("%s %.1f", p.env.T("متوسط الأداء:", "Average score:"), pf.AverageScore),
		"",
		components.Meter{Label: p.env.T("الإنجاز", "Completion"), Done: pf.CompletionPercent, Total: 100, ShowPercent: true}.Render(cw),
		"",
	)

	if len(pf.Tasks) == 0 {
		lines = append(lines, theme.Hint.Render(p.env.T("لا توجد مهام مكتملة بعد.", "No completed tasks yet.")))
	} else {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(p.env.T("المهام المكتملة", "Completed tasks")))
		room := max(height-len(lines)-4, 1)
		tasks := pf.Tasks
		if len(tasks) > room {
			tasks = tasks[len(tasks)-room:]
		}
		for _, t := range tasks {
			mark := "  "
			if pf.Best != nil && t.Title == pf.Best.Title && t.CompletedAt.Equal(pf.Best.CompletedAt) {
				mark = "★ "
			}
			lines = append(lines, fmt.Sprintf("%s%s  %s  %s", mark, t.CompletedAt.Format("2006-01-02"), t.Title,
				theme.ScoreStyle(t.Score).Render(fmt.Sprintf("%.0f", t.Score))))
		}
	}
	return lipgloss.NewStyle().Padding(1, 3).Render(strings.Join(lines, "\n"))
}

func (p *PortfolioScreen) Title() string {
	return p.env.T("ملف الإنجازات", "Portfolio")
}

func (p *PortfolioScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: p.env.T("لوحة التحكم", "Dashboard")}}
}

func (p *PortfolioScreen) Back() session.Route {
	return session.RouteDashboard
}
