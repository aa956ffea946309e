package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/educareer/internal/ui/theme"
)

var choiceLabels = "ABCDEFGH"

// Choices is a lettered option list. Options are picked with the arrow
// keys or directly by letter or digit.
type Choices struct {
	Options []string
	Cursor  int
}

// NewChoices starts the cursor on cursor, clamped to the options.
func NewChoices(options []string, cursor int) Choices {
	c := Choices{Options: options}
	c.move(cursor)
	return c
}

func (c *Choices) move(i int) {
	c.Cursor = max(0, min(i, len(c.Options)-1))
}

// Update moves the cursor. confirmed reports an Enter press.
func (c Choices) Update(msg tea.Msg) (_ Choices, confirmed bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, false
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		c.move(c.Cursor - 1)
	case "down", "j":
		c.move(c.Cursor + 1)
	case "enter":
		return c, true
	default:
		if i, ok := shortcut(key); ok && i < len(c.Options) {
			c.Cursor = i
		}
	}
	return c, false
}

// shortcut maps "a".."h" and "1".."8" to an option index.
func shortcut(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	if i := strings.IndexByte(strings.ToLower(choiceLabels), key[0]); i >= 0 {
		return i, true
	}
	if key[0] >= '1' && key[0] <= '8' {
		return int(key[0] - '1'), true
	}
	return 0, false
}

// View renders one line per option, wrapped at width.
func (c Choices) View(width int) string {
	lines := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		label := "?"
		if i < len(choiceLabels) {
			label = choiceLabels[i : i+1]
		}
		line := fmt.Sprintf("%s)  %s", label, opt)
		if i == c.Cursor {
			lines = append(lines, theme.Selected.Width(width).Render("▸ "+line))
		} else {
			lines = append(lines, theme.Unselected.Width(width).Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}
