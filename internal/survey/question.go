package survey

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aisurvival/internal/questionnaire"
	"github.com/abhisek/aisurvival/internal/ui/components"
	"github.com/abhisek/aisurvival/internal/ui/layout"
	"github.com/abhisek/aisurvival/internal/ui/theme"
)

// questionScreen asks one catalog question. Choosing an option records it
// on the session and opens the next question, or the run screen after the
// last one.
type questionScreen struct {
	env     *env
	profile *questionnaire.Profile
	index   int
	q       questionnaire.Question
	choice  components.Choice
	err     string
}

var _ screen = (*questionScreen)(nil)

func newQuestionScreen(e *env, profile *questionnaire.Profile, index int) *questionScreen {
	q := e.session.Catalog().Questions[index]

	labels := make([]string, len(q.Options))
	selected := 0
	prev, answered := e.session.Answers().Get(q.ID)
	for i, o := range q.Options {
		labels[i] = o.Label()
		if answered && o.Key == prev.OptionKey {
			selected = i
		}
	}

	return &questionScreen{
		env:     e,
		profile: profile,
		index:   index,
		q:       q,
		choice:  components.NewChoice(q.Title, labels, selected),
	}
}

func (s *questionScreen) Init() tea.Cmd { return nil }

func (s *questionScreen) Title() string { return "Questions" }

func (s *questionScreen) Hints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *questionScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, pop
	}

	s.choice, _ = s.choice.Update(msg)
	if !s.choice.Done() {
		return s, nil
	}

	key := s.q.Options[s.choice.Chosen].Key
	s.choice.Chosen = -1
	if err := s.env.session.Answer(s.q.ID, key); err != nil {
		s.err = err.Error()
		return s, nil
	}
	s.err = ""

	if s.index+1 < len(s.env.session.Catalog().Questions) {
		return s, push(newQuestionScreen(s.env, s.profile, s.index+1))
	}
	return s, push(newRunScreen(s.env, s.profile))
}

func (s *questionScreen) View(width, height int) string {
	var b strings.Builder
	total := len(s.env.session.Catalog().Questions)
	b.WriteString(components.NewProgressBar(s.index, total, min(width-4, 50)).View())
	b.WriteString("\n\n")
	b.WriteString(s.choice.View())
	if s.err != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.err))
	}
	return b.String()
}
