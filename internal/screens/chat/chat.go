package chat

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/mentor"
	"github.com/abhisek/educareer/internal/screen"
	"github.com/abhisek/educareer/internal/screens"
	"github.com/abhisek/educareer/internal/ui/components"
	"github.com/abhisek/educareer/internal/ui/layout"
	"github.com/abhisek/educareer/internal/ui/theme"
)

// replyMsg carries the mentor's answer. Err is set when the reply is the
// fallback text.
type replyMsg struct {
	Reply string
	Err   error
}

// ChatScreen is the conversation with the track mentor.
type ChatScreen struct {
	env     screens.Env
	input   components.TextInput
	waiting bool
	err     string
}

var (
	_ screen.Screen          = (*ChatScreen)(nil)
	_ screen.KeyHintProvider = (*ChatScreen)(nil)
)

// New creates a new ChatScreen.
func New(env screens.Env) *ChatScreen {
	return &ChatScreen{
		env:   env,
		input: components.NewTextInput(env.T("اكتب سؤالك...", "Ask your mentor..."), 4000),
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		c.waiting = false
		if msg.Err != nil && msg.Reply == "" {
			c.err = msg.Err.Error()
		}
		return c, nil

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return c, c.send()
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) send() tea.Cmd {
	if c.waiting {
		return nil
	}
	text := c.input.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	c.input.Clear()
	c.waiting = true
	c.err = ""

	env := c.env
	return func() tea.Msg {
		ctx, cancel := env.Context()
		defer cancel()
		reply, err := env.Mentor.Chat(ctx, env.Session, text)
		if errors.Is(err, mentor.ErrChatUnavailable) {
			return replyMsg{Err: err}
		}
		return replyMsg{Reply: reply, Err: err}
	}
}

func (c *ChatScreen) View(width, height int) string {
	you := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	them := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(width - 6)

	var lines []string
	for _, m := range c.env.Mentor.Transcript(c.env.Session.ID()) {
		who := them.Render(c.env.T("المرشد", "Mentor"))
		if m.Role == mentor.RoleUser {
			who = you.Render(c.env.T("أنت", "You"))
		}
		lines = append(lines, who, body.Render(m.Text), "")
	}
	if len(lines) == 0 {
		lines = append(lines, theme.Hint.Render(c.env.T(
			"اسأل مرشدك عن أي شيء في مسارك.",
			"Ask your mentor anything about your track.",
		)), "")
	}

	// Keep the most recent lines that fit above the input.
	all := strings.Split(strings.Join(lines, "\n"), "\n")
	room := max(height-6, 1)
	if len(all) > room {
		all = all[len(all)-room:]
	}

	footer := []string{c.input.View()}
	if c.waiting {
		footer = append(footer, theme.Hint.Render(c.env.T("المرشد يكتب...", "Mentor is typing...")))
	}
	if c.err != "" {
		footer = append(footer, screens.ErrorLine(c.err))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(all, "\n") + "\n" + strings.Join(footer, "\n"))
}

func (c *ChatScreen) Title() string {
	return c.env.T("المرشد الذكي", "AI Mentor")
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: c.env.T("إرسال", "Send")},
		{Key: "Esc", Description: c.env.T("رجوع", "Back")},
	}
}
