package components

import (
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// NumberInput is a digits-only text input bounded to [Min, Max].
type NumberInput struct {
	Model    textinput.Model
	Min, Max int
}

// NewNumberInput creates a focused input prefilled with value.
func NewNumberInput(value, lo, hi int) NumberInput {
	ti := textinput.New()
	ti.CharLimit = len(strconv.Itoa(hi))
	ti.SetValue(strconv.Itoa(value))
	ti.Focus()
	return NumberInput{Model: ti, Min: lo, Max: hi}
}

// Init returns the cursor blink command.
func (n NumberInput) Init() tea.Cmd {
	return n.Model.Focus()
}

// Update ignores non-digit characters and forwards everything else.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && (key[0] < '0' || key[0] > '9') {
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// View renders the input.
func (n NumberInput) View() string {
	return n.Model.View()
}

// Value parses the input and checks the bounds.
func (n NumberInput) Value() (int, error) {
	v, err := strconv.Atoi(n.Model.Value())
	if err != nil {
		return 0, fmt.Errorf("enter a number between %d and %d", n.Min, n.Max)
	}
	if v < n.Min || v > n.Max {
		return 0, fmt.Errorf("enter a number between %d and %d", n.Min, n.Max)
	}
	return v, nil
}
