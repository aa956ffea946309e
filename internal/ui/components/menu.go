package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/educareer/internal/ui/theme"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical list of actions. The cursor wraps at both ends.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the cursor on the first item.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Rebuild swaps in a fresh item list, keeping the cursor where it was
// when it still points at an item. Screens whose labels depend on the
// language or session state rebuild before every update.
func (m Menu) Rebuild(items []MenuItem) Menu {
	m.Items = items
	if m.Selected >= len(items) {
		m.Selected = 0
	}
	return m
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch kmsg.String() {
	case "up", "k":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j":
		m.Selected = (m.Selected + 1) % n
	case "home":
		m.Selected = 0
	case "end":
		m.Selected = n - 1
	case "enter":
		if item := m.Items[m.Selected]; item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	active := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	idle := lipgloss.NewStyle().Foreground(theme.Text)

	var b strings.Builder
	for i, item := range m.Items {
		if i == m.Selected {
			b.WriteString(active.Render("  ▸ " + item.Label))
		} else {
			b.WriteString(idle.Render("    " + item.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
