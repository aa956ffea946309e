package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/ui/theme"
)

// TextInput is a single-line bubbles input that can be flagged invalid
// after a rejected submit. Editing clears the flag.
type TextInput struct {
	Model   textinput.Model
	invalid bool
}

// NewTextInput creates a focused input accepting at most limit runes.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Focus()
	return TextInput{Model: ti}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.invalid = false
	}
	return t, cmd
}

func (t TextInput) View() string {
	view := t.Model.View()
	if t.invalid {
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

// Value returns the input with surrounding whitespace removed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.invalid = false
}

// Clear empties the input after a successful submit.
func (t *TextInput) Clear() {
	t.Model.Reset()
	t.invalid = false
}

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

func (t *TextInput) Blur() { t.Model.Blur() }

// MarkInvalid flags the current value as rejected.
func (t *TextInput) MarkInvalid() { t.invalid = true }
