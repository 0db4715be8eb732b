package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aisurvival/internal/ui/theme"
)

// Choice is a single-select list. Enter confirms the highlighted option.
type Choice struct {
	Prompt   string
	Options  []string
	Selected int

	// Chosen is the confirmed index, or -1 until Enter is pressed.
	Chosen int
}

// NewChoice creates a Choice with selected highlighted.
func NewChoice(prompt string, options []string, selected int) Choice {
	if selected < 0 || selected >= len(options) {
		selected = 0
	}
	return Choice{
		Prompt:   prompt,
		Options:  options,
		Selected: selected,
		Chosen:   -1,
	}
}

// Update handles keyboard navigation and selection. Digit keys jump to
// the matching option.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Chosen = c.Selected
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Selected = i
			}
		}
	}
	return c, nil
}

// Done reports whether an option has been confirmed.
func (c Choice) Done() bool { return c.Chosen >= 0 }

// View renders the prompt and options.
func (c Choice) View() string {
	var b strings.Builder
	if c.Prompt != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Prompt))
		b.WriteString("\n\n")
	}
	for i, opt := range c.Options {
		if i == c.Selected {
			b.WriteString(theme.Selected.Render("  ▸ " + opt))
		} else {
			b.WriteString(theme.Unselected.Render("    " + opt))
		}
		b.WriteString("\n")
	}
	return b.String()
}
