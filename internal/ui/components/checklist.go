package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aisurvival/internal/ui/theme"
)

// Checklist is a multi-select list. Space toggles, Enter confirms.
type Checklist struct {
	Prompt   string
	Options  []string
	Cursor   int
	Checked  map[int]bool
	Finished bool
}

// NewChecklist creates an empty Checklist.
func NewChecklist(prompt string, options []string) Checklist {
	return Checklist{Prompt: prompt, Options: options, Checked: make(map[int]bool)}
}

// Update handles navigation, toggling and confirmation.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ", "x":
		checked := make(map[int]bool, len(c.Checked)+1)
		for k, v := range c.Checked {
			checked[k] = v
		}
		checked[c.Cursor] = !checked[c.Cursor]
		c.Checked = checked
	case "enter":
		c.Finished = true
	}
	return c, nil
}

// Values returns the checked options in list order.
func (c Checklist) Values() []string {
	var out []string
	for i, opt := range c.Options {
		if c.Checked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// View renders the prompt and options with check marks.
func (c Checklist) View() string {
	var b strings.Builder
	if c.Prompt != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
		b.WriteString("\n\n")
	}
	for i, opt := range c.Options {
		box := "[ ]"
		if c.Checked[i] {
			box = "[x]"
		}
		cursor := "  "
		if i == c.Cursor {
			cursor = "▸ "
		}
		line := "  " + cursor + box + " " + opt
		switch {
		case i == c.Cursor:
			b.WriteString(theme.Selected.Render(line))
		case c.Checked[i]:
			b.WriteString(theme.Done.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
