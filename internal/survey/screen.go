package survey

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aisurvival/internal/ui/layout"
)

// screen is one page of the survey.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)

	// View renders the content area (excluding header/footer).
	View(width, height int) string

	// Title is shown in the header.
	Title() string

	// Hints are shown in the footer.
	Hints() []layout.KeyHint
}

// pushMsg opens a screen on top of the current one.
type pushMsg struct{ screen screen }

// popMsg returns to the previous screen.
type popMsg struct{}

// replaceMsg swaps the current screen for another.
type replaceMsg struct{ screen screen }

// restartMsg replaces the whole stack with one screen.
type restartMsg struct{ screen screen }

func push(s screen) tea.Cmd    { return func() tea.Msg { return pushMsg{s} } }
func pop() tea.Msg             { return popMsg{} }
func replace(s screen) tea.Cmd { return func() tea.Msg { return replaceMsg{s} } }
func restart(s screen) tea.Cmd { return func() tea.Msg { return restartMsg{s} } }

// stack is the navigation history. The bottom screen is never popped.
type stack struct {
	screens []screen
}

func (st *stack) push(s screen) tea.Cmd {
	st.screens = append(st.screens, s)
	return s.Init()
}

func (st *stack) pop() {
	if len(st.screens) > 1 {
		st.screens = st.screens[:len(st.screens)-1]
	}
}

func (st *stack) restart(s screen) tea.Cmd {
	st.screens = []screen{s}
	return s.Init()
}

func (st *stack) active() screen {
	if len(st.screens) == 0 {
		return nil
	}
	return st.screens[len(st.screens)-1]
}

func (st *stack) depth() int { return len(st.screens) }

// update routes navigation messages and forwards the rest to the active
// screen.
func (st *stack) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pushMsg:
		return st.push(msg.screen)
	case popMsg:
		st.pop()
		return nil
	case replaceMsg:
		st.screens[len(st.screens)-1] = msg.screen
		return msg.screen.Init()
	case restartMsg:
		return st.restart(msg.screen)
	}

	active := st.active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	st.screens[len(st.screens)-1] = updated
	return cmd
}
