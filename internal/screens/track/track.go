package track

import (
	"fmt"
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

// TrackScreen shows one track in full and lets the learner commit to it.
type TrackScreen struct {
	env    screens.Env
	info   catalog.Info
	offset int
	err    string
}

var (
	_ screen.Screen          = (*TrackScreen)(nil)
	_ screen.KeyHintProvider = (*TrackScreen)(nil)
)

// New creates a TrackScreen for id. The id must be in the catalog; the
// navigation guards send unknown ids back to the catalog.
func New(env screens.Env, id catalog.Specialization) *TrackScreen {
	info, _ := env.Session.Catalog().Lookup(id)
	return &TrackScreen{env: env, info: info}
}

func (t *TrackScreen) Init() tea.Cmd {
	return nil
}

func (t *TrackScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return t, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if t.offset > 0 {
			t.offset--
		}
	case "down", "j":
		t.offset++
	case "enter":
		return t, t.start()
	}
	return t, nil
}

func (t *TrackScreen) start() tea.Cmd {
	if err := t.env.Session.SelectSpecialization(t.info.ID); err != nil {
		t.err = err.Error()
		return nil
	}
	t.err = ""
	return router.Navigate(session.RouteAssessment)
}

func (t *TrackScreen) View(width, height int) string {
	lang := t.env.Lang()
	w := min(width-4, 90)

	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	section := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(w)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim).Width(w)

	lines := []string{
		heading.Render(t.info.Title.In(lang)),
		dim.Render(t.info.Description.In(lang)),
		"",
		section.Render(t.env.T("المسؤوليات", "Responsibilities")),
		body.Render(t.info.Responsibilities.In(lang)),
		"",
		section.Render(t.env.T("الطلب في 2026", "Demand in 2026")),
		body.Render(t.info.Demand2026.In(lang)),
		"",
		section.Render(t.env.T("المسار المهني", "Career path")),
		body.Render(strings.Join(t.info.CareerPath.In(lang), " → ")),
		"",
		section.Render(t.env.T("المهارات", "Skills")),
		body.Render(strings.Join(t.info.Skills, " · ")),
		"",
		section.Render(t.env.T("خارطة الطريق", "Roadmap")),
	}
	for _, lvl := range t.info.Roadmap {
		lines = append(lines, body.Render(fmt.Sprintf("%d. %s", lvl.ID, lvl.Title)))
		for _, m := range lvl.Modules {
			lines = append(lines, dim.Render("   • "+m))
		}
	}

	content := strings.Split(strings.Join(lines, "\n"), "\n")
	button := components.CallToAction(t.env.T("ابدأ هذا المسار", "Start this track"), true, min(w, 40))
	footer := []string{"", button}
	if t.err != "" {
		footer = append(footer, screens.ErrorLine(t.err))
	}

	visible := height - lipgloss.Height(strings.Join(footer, "\n")) - 2
	if visible < 1 {
		visible = 1
	}
	maxOffset := max(len(content)-visible, 0)
	t.offset = min(t.offset, maxOffset)
	end := min(t.offset+visible, len(content))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(content[t.offset:end], "\n") + "\n" + strings.Join(footer, "\n"))
}

func (t *TrackScreen) Title() string {
	return t.info.Title.In(t.env.Lang())
}

func (t *TrackScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: t.env.T("تمرير", "Scroll")},
		{Key: "Enter", Description: t.env.T("ابدأ", "Start")},
		{Key: "Esc", Description: t.env.T("رجوع", "Back")},
	}
}
