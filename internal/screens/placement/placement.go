package placement

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
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/components"
	"github.com/abhisek/educareer/internal/ui/layout"
	"github.com/abhisek/educareer/internal/ui/theme"
)

// PlacementScreen runs the ten question placement test.
type PlacementScreen struct {
	env     screens.Env
	loading bool
	err     string
	choices components.Choices
	result  *assessment.Result
}

var (
	_ screen.Screen          = (*PlacementScreen)(nil)
	_ screen.KeyHintProvider = (*PlacementScreen)(nil)
)

// New creates a new PlacementScreen.
func New(env screens.Env) *PlacementScreen {
	return &PlacementScreen{env: env}
}

func (p *PlacementScreen) Init() tea.Cmd {
	e, err := p.env.Session.Engine()
	if err == nil {
		p.selectAnswered(e)
		return nil
	}
	if !errors.Is(err, session.ErrAssessmentNotLoaded) {
		p.err = err.Error()
		return nil
	}
	return p.load()
}

func (p *PlacementScreen) load() tea.Cmd {
	p.loading = true
	p.err = ""
	env := p.env
	return func() tea.Msg {
		ctx, cancel := env.Context()
		defer cancel()
		_, err := env.Mentor.StartPlacement(ctx, env.Session)
		return questionsLoadedMsg{Err: err}
	}
}

func (p *PlacementScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		p.loading = false
		if msg.Err != nil {
			p.err = p.env.T("تعذر تحميل أسئلة التقييم.", "Could not load the placement questions.")
			p.env.Log.Warn("placement load failed", "session_id", p.env.Session.ID(), "error", msg.Err)
		}
		if e, err := p.env.Session.Engine(); err == nil {
			p.selectAnswered(e)
		}
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PlacementScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch {
	case p.loading:
		return p, nil
	case p.result != nil:
		if key == "enter" {
			return p, router.Navigate(session.RouteDashboard)
		}
		return p, nil
	case p.err != "":
		switch key {
		case "r":
			return p, p.load()
		case "b":
			return p, router.Navigate(session.RouteDiscover)
		}
		return p, nil
	}

	e, err := p.env.Session.Engine()
	if err != nil {
		p.err = err.Error()
		return p, nil
	}
	var confirmed bool
	p.choices, confirmed = p.choices.Update(msg)
	if confirmed {
		return p, p.answer(e)
	}
	return p, nil
}

func (p *PlacementScreen) answer(e *assessment.Engine) tea.Cmd {
	if err := p.env.Session.RecordAnswer(e.Current(), p.choices.Cursor); err != nil {
		p.err = err.Error()
		return nil
	}
	done, err := p.env.Session.Advance()
	if err != nil {
		p.err = err.Error()
		return nil
	}
	if !done {
		p.selectAnswered(e)
		return nil
	}

	ctx, cancel := p.env.Context()
	defer cancel()
	res, err := p.env.Mentor.FinishPlacement(ctx, p.env.Session)
	if err != nil {
		p.err = err.Error()
		return nil
	}
	p.result = &res
	return nil
}

// selectAnswered loads the current question's options with the cursor on
// its stored answer, if any.
func (p *PlacementScreen) selectAnswered(e *assessment.Engine) {
	cursor := 0
	if a, ok := e.Answer(e.Current()); ok {
		cursor = a
	}
	p.choices = components.NewChoices(e.CurrentQuestion().Options, cursor)
}

func (p *PlacementScreen) View(width, height int) string {
	if p.loading {
		return screens.Centered(theme.Hint.Render(p.env.T("جاري تحضير أسئلة التقييم...", "Preparing your placement test...")), width, height)
	}
	if p.result != nil {
		return p.renderResult(width, height)
	}
	if p.err != "" {
		hint := theme.Hint.Render(p.env.T("r إعادة المحاولة · b المسارات", "r retry · b browse tracks"))
		return screens.Centered(screens.ErrorLine(p.err)+"\n\n"+hint, width, height)
	}

	e, err := p.env.Session.Engine()
	if err != nil {
		return screens.Centered(screens.ErrorLine(err.Error()), width, height)
	}
	q := e.CurrentQuestion()
	cw := components.ContentWidth(width)

	progress := components.Meter{
		Label: fmt.Sprintf("%d/%d", e.Current()+1, len(e.Questions())),
		Done:  e.Current() + 1,
		Total: len(e.Questions()),
	}.Render(cw)

	lines := []string{
		progress,
		"",
		theme.Hint.Render(string(q.Difficulty)),
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Question),
		"",
		p.choices.View(cw),
	}
	return screens.Centered(strings.Join(lines, "\n"), width, height)
}

func (p *PlacementScreen) renderResult(width, height int) string {
	lang := p.env.Lang()
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(p.env.T("اكتمل التقييم", "Placement complete")),
		"",
		fmt.Sprintf("%s %d/%d", p.env.T("النتيجة:", "Score:"), p.result.Score, assessment.QuestionCount),
		fmt.Sprintf("%s %s", p.env.T("المستوى:", "Level:"), p.result.LabelIn(lang)),
	}
	if spec, ok := p.env.Session.User().Track(); ok {
		mods := p.env.Session.Catalog().ModulesFor(spec, p.result.Level)
		if len(mods) > 0 {
			lines = append(lines, "", theme.Hint.Render(p.env.T("وحداتك الأولى:", "Your first modules:")))
			for _, m := range mods {
				lines = append(lines, "• "+m)
			}
		}
	}
	lines = append(lines, "", components.CallToAction(p.env.T("إلى لوحة التحكم", "Go to dashboard"), true, 30))
	return screens.Centered(strings.Join(lines, "\n"), width, height)
}

func (p *PlacementScreen) Title() string {
	return p.env.T("تقييم المستوى", "Placement Test")
}

func (p *PlacementScreen) KeyHints() []layout.KeyHint {
	if p.result != nil {
		return []layout.KeyHint{{Key: "Enter", Description: p.env.T("متابعة", "Continue")}}
	}
	return []layout.KeyHint{
		{Key: "↑↓/A-D", Description: p.env.T("اختيار", "Choose")},
		{Key: "Enter", Description: p.env.T("تأكيد", "Confirm")},
	}
}
