package tasks

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/oracle"
	"github.com/abhisek/educareer/internal/screen"
	"github.com/abhisek/educareer/internal/screens"
	"github.com/abhisek/educareer/internal/session"
	"github.com/abhisek/educareer/internal/ui/components"
	"github.com/abhisek/educareer/internal/ui/layout"
	"github.com/abhisek/educareer/internal/ui/theme"
)

// Phase is the step of the daily task flow.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseWriting
	PhaseReviewing
	PhaseReviewed
	PhaseFailed
)

// TasksScreen shows the daily task, takes the submission and shows the
// review before it is recorded.
type TasksScreen struct {
	env      screens.Env
	phase    Phase
	task     *oracle.Task
	feedback *oracle.Feedback
	fallback bool
	done     int
	input    components.TextInput
	err      string
}

var (
	_ screen.Screen          = (*TasksScreen)(nil)
	_ screen.KeyHintProvider = (*TasksScreen)(nil)
	_ screen.BackNavigator   = (*TasksScreen)(nil)
)

// New creates a new TasksScreen.
func New(env screens.Env) *TasksScreen {
	return &TasksScreen{
		env:   env,
		input: components.NewTextInput(env.T("اكتب حلك هنا...", "Write your solution..."), 20000),
	}
}

// Phase returns the current step.
func (t *TasksScreen) Phase() Phase { return t.phase }

func (t *TasksScreen) Init() tea.Cmd {
	task, fb := t.env.Mentor.CurrentTask(t.env.Session.ID())
	if task != nil {
		t.task = task
		t.phase = PhaseWriting
		if fb != nil {
			t.feedback = fb
			t.phase = PhaseReviewed
		}
		return t.input.Init()
	}
	return t.load()
}

func (t *TasksScreen) load() tea.Cmd {
	t.phase = PhaseLoading
	t.err = ""
	env := t.env
	return func() tea.Msg {
		ctx, cancel := env.Context()
		defer cancel()
		task, err := env.Mentor.DailyTask(ctx, env.Session)
		return taskLoadedMsg{Task: task, Err: err}
	}
}

func (t *TasksScreen) submit() tea.Cmd {
	text := t.input.Value()
	if strings.TrimSpace(text) == "" {
		t.err = t.env.T("اكتب حلك قبل الإرسال.", "Write your solution before submitting.")
		return nil
	}
	t.phase = PhaseReviewing
	t.err = ""
	env := t.env
	return func() tea.Msg {
		ctx, cancel := env.Context()
		defer cancel()
		fb, err := env.Mentor.Submit(ctx, env.Session, text)
		return reviewedMsg{Feedback: fb, Err: err}
	}
}

func (t *TasksScreen) confirm() tea.Cmd {
	ctx, cancel := t.env.Context()
	defer cancel()
	if err := t.env.Mentor.Confirm(ctx, t.env.Session); err != nil {
		t.err = err.Error()
		return nil
	}
	t.done++
	t.task, t.feedback = nil, nil
	t.input.Clear()
	return t.load()
}

func (t *TasksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case taskLoadedMsg:
		if msg.Err != nil {
			t.phase = PhaseFailed
			t.err = t.env.T("تعذر تحميل مهمة اليوم.", "Could not load today's task.")
			return t, nil
		}
		t.task = msg.Task
		t.phase = PhaseWriting
		return t, t.input.Init()

	case reviewedMsg:
		if msg.Feedback == nil {
			t.phase = PhaseWriting
			t.err = msg.Err.Error()
			return t, nil
		}
		t.feedback = msg.Feedback
		t.fallback = msg.Err != nil
		t.phase = PhaseReviewed
		return t, nil

	case tea.KeyMsg:
		return t.handleKey(msg)
	}

	if t.phase == PhaseWriting {
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd
	}
	return t, nil
}

func (t *TasksScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch t.phase {
	case PhaseWriting:
		if key == "enter" {
			return t, t.submit()
		}
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return t, cmd

	case PhaseReviewed:
		switch key {
		case "enter":
			if t.fallback {
				return t, nil
			}
			return t, t.confirm()
		case "e":
			t.phase = PhaseWriting
			t.feedback, t.fallback = nil, false
			return t, t.input.Init()
		}

	case PhaseFailed:
		if key == "r" {
			return t, t.load()
		}
	}
	return t, nil
}

func (t *TasksScreen) View(width, height int) string {
	w := min(width-6, 90)
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(w)

	var lines []string
	switch t.phase {
	case PhaseLoading:
		return screens.Centered(theme.Hint.Render(t.env.T("جاري تحضير مهمة اليوم...", "Preparing today's task...")), width, height)
	case PhaseFailed:
		return screens.Centered(screens.ErrorLine(t.err)+"\n\n"+theme.Hint.Render(t.env.T("r إعادة المحاولة", "r retry")), width, height)
	}

	if t.done > 0 {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Success).Render(
			fmt.Sprintf("%s %d", t.env.T("مهام مكتملة في هذه الجلسة:", "Tasks completed this session:"), t.done)), "")
	}
	lines = append(lines,
		heading.Render(t.task.Title),
		theme.Hint.Render(t.env.T("المهارة: ", "Skill: ")+t.task.Skill),
		"",
		body.Render(t.task.Description),
		"",
	)

	switch t.phase {
	case PhaseWriting:
		lines = append(lines, t.input.View())
	case PhaseReviewing:
		lines = append(lines, theme.Hint.Render(t.env.T("جاري مراجعة حلك...", "Reviewing your work...")))
	case PhaseReviewed:
		lines = append(lines, t.renderFeedback(w)...)
	}
	if t.err != "" {
		lines = append(lines, "", screens.ErrorLine(t.err))
	}
	return lipgloss.NewStyle().Padding(1, 3).Render(strings.Join(lines, "\n"))
}

func (t *TasksScreen) renderFeedback(w int) []string {
	fb := t.feedback
	lines := []string{
		theme.ScoreStyle(fb.Score).Render(fmt.Sprintf("%s %.0f/100", t.env.T("التقييم:", "Score:"), fb.Score)),
		lipgloss.NewStyle().Foreground(theme.Text).Width(w).Render(fb.Feedback),
	}
	for _, s := range fb.Suggestions {
		lines = append(lines, theme.Hint.Render("• "+s))
	}
	if t.fallback {
		lines = append(lines, "", screens.ErrorLine(t.env.T(
			"تعذرت المراجعة. عدّل حلك وأعد الإرسال.",
			"The review failed. Edit and submit again.",
		)))
	}
	return lines
}

func (t *TasksScreen) Title() string {
	return t.env.T("مهمة اليوم", "Daily Task")
}

func (t *TasksScreen) KeyHints() []layout.KeyHint {
	switch t.phase {
	case PhaseWriting:
		return []layout.KeyHint{
			{Key: "Enter", Description: t.env.T("إرسال", "Submit")},
			{Key: "Esc", Description: t.env.T("لوحة التحكم", "Dashboard")},
		}
	case PhaseReviewed:
		hints := []layout.KeyHint{{Key: "E", Description: t.env.T("تعديل", "Edit")}}
		if !t.fallback {
			hints = append([]layout.KeyHint{{Key: "Enter", Description: t.env.T("اعتماد", "Confirm")}}, hints...)
		}
		return hints
	case PhaseFailed:
		return []layout.KeyHint{{Key: "R", Description: t.env.T("إعادة", "Retry")}}
	}
	return nil
}

func (t *TasksScreen) Back() session.Route {
	return session.RouteDashboard
}
