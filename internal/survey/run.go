package survey

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aisurvival/internal/apperr"
	"github.com/abhisek/aisurvival/internal/pipeline"
	"github.com/abhisek/aisurvival/internal/questionnaire"
	"github.com/abhisek/aisurvival/internal/ui/components"
	"github.com/abhisek/aisurvival/internal/ui/layout"
	"github.com/abhisek/aisurvival/internal/ui/theme"
)

// stateMsg carries one pipeline transition into the UI loop.
type stateMsg pipeline.State

// doneMsg ends a run.
type doneMsg struct {
	result *pipeline.Result
	err    error
}

// runScreen drives one pipeline run and shows its progress. On failure it
// offers to retry with the same answers or to start over.
type runScreen struct {
	env     *env
	profile *questionnaire.Profile

	spinner spinner.Model
	updates chan pipeline.State
	visited map[pipeline.State]bool
	current pipeline.State

	err  error
	menu components.Menu
}

var _ screen = (*runScreen)(nil)

func newRunScreen(e *env, profile *questionnaire.Profile) *runScreen {
	r := &runScreen{
		env:     e,
		profile: profile,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		visited: make(map[pipeline.State]bool),
		current: pipeline.StateIdle,
	}
	r.menu = components.NewMenu([]components.MenuItem{
		{Label: "Retry", Key: "r", Action: func() tea.Cmd { return restartRun(e, profile) }},
		{Label: "Edit answers", Key: "e", Action: func() tea.Cmd { return pop }},
		{Label: "Start over", Key: "n", Action: func() tea.Cmd { return startOver(e) }},
	})
	return r
}

func restartRun(e *env, profile *questionnaire.Profile) tea.Cmd {
	return replace(newRunScreen(e, profile))
}

func startOver(e *env) tea.Cmd {
	e.session.Reset()
	return restart(newProfileScreen(e))
}

func (r *runScreen) Init() tea.Cmd {
	if err := r.submitProfile(); err != nil {
		return func() tea.Msg { return doneMsg{err: err} }
	}

	r.updates = make(chan pipeline.State, 16)
	return tea.Batch(r.spinner.Tick, r.start(), r.listen())
}

// submitProfile hands the form's profile to the session. A session keeps
// the first profile it was given, so an edited profile starts a fresh
// session that carries the answers over.
func (r *runScreen) submitProfile() error {
	if r.profile == nil {
		return nil
	}
	s := r.env.session
	current, ok := s.Profile()
	if ok && current.Equal(*r.profile) {
		return nil
	}
	if ok {
		entries := s.Answers().Entries()
		s.Reset()
		for _, e := range entries {
			if err := s.Answer(e.QuestionID, e.OptionKey); err != nil {
				return err
			}
		}
	}
	return s.SetProfile(*r.profile)
}

// start runs the pipeline off the UI loop. Transitions are buffered on
// updates and the channel is closed when the run returns.
func (r *runScreen) start() tea.Cmd {
	e, updates := r.env, r.updates
	return func() tea.Msg {
		defer close(updates)
		res, err := e.run(e.ctx, e.session, func(s pipeline.State) {
			select {
			case updates <- s:
			default:
			}
		})
		return doneMsg{result: res, err: err}
	}
}

func (r *runScreen) listen() tea.Cmd {
	updates := r.updates
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(s)
	}
}

func (r *runScreen) Title() string { return "Diagnosis" }

func (r *runScreen) Hints() []layout.KeyHint {
	if r.err == nil {
		return nil
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *runScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		r.current = pipeline.State(msg)
		r.visited[r.current] = true
		return r, r.listen()

	case doneMsg:
		if msg.err != nil {
			r.err = msg.err
			return r, nil
		}
		return r, restart(newReportScreen(r.env, msg.result))

	case spinner.TickMsg:
		if r.err != nil {
			return r, nil
		}
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.KeyMsg:
		if r.err == nil {
			return r, nil
		}
		if msg.String() == "esc" {
			return r, pop
		}
		var cmd tea.Cmd
		r.menu, cmd = r.menu.Update(msg)
		return r, cmd
	}
	return r, nil
}

var progressSteps = []pipeline.State{
	pipeline.StateClassifying,
	pipeline.StateRecommending,
	pipeline.StateResolvingAsset,
	pipeline.StateNarrating,
}

func (r *runScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("診断中…"))
	b.WriteString("\n\n")

	for _, st := range progressSteps {
		line := fmt.Sprintf("Step %d: %s", st.Step(), st.Description())
		switch {
		case st == r.current && r.err == nil:
			b.WriteString(r.spinner.View() + " " + theme.Selected.Render(line))
		case r.visited[st]:
			b.WriteString(theme.Done.Render("✓ " + line))
		default:
			b.WriteString(theme.Pending.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if r.err != nil {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(fmt.Sprintf("Diagnosis failed (%s)", apperr.Kind(r.err))))
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(max(width-4, 20)).Render(r.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Your profile and answers are kept."))
		b.WriteString("\n\n")
		b.WriteString(r.menu.View())
	}
	return b.String()
}
