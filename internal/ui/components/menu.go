package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aisurvival/internal/ui/theme"
)

// MenuItem is one action in a Menu. Key, when set, triggers the item
// directly.
type MenuItem struct {
	Label  string
	Key    string
	Action func() tea.Cmd
}

// Menu is a vertical action menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the given items.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles navigation, Enter and item shortcut keys.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			return m, m.trigger(m.Selected)
		}
	default:
		for i, item := range m.Items {
			if item.Key != "" && item.Key == key {
				m.Selected = i
				return m, m.trigger(i)
			}
		}
	}
	return m, nil
}

func (m Menu) trigger(i int) tea.Cmd {
	if m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		label := item.Label
		if item.Key != "" {
			label += " (" + item.Key + ")"
		}
		if i == m.Selected {
			s += theme.Selected.Render("  ▸ "+label) + "\n"
		} else {
			s += theme.Unselected.Render("    "+label) + "\n"
		}
	}
	return s
}
