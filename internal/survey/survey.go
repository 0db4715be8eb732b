// Package survey is the interactive questionnaire: profile form, the four
// questions, a progress view while the pipeline runs, and the report.
package survey

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aisurvival/internal/pipeline"
	"github.com/abhisek/aisurvival/internal/ui/components"
	"github.com/abhisek/aisurvival/internal/ui/layout"
)

// RunFunc executes one pipeline over the session, reporting transitions to
// observe.
type RunFunc func(ctx context.Context, s *pipeline.Session, observe pipeline.Observer) (*pipeline.Result, error)

// Options configures the survey program.
type Options struct {
	Session *pipeline.Session
	Run     RunFunc

	// MarkdownStyle is the glamour style of the report. Empty renders
	// plain text; resolve "auto" before calling Run.
	MarkdownStyle string
}

// env is what every screen shares.
type env struct {
	ctx      context.Context
	session  *pipeline.Session
	run      RunFunc
	markdown *components.Markdown
}

type model struct {
	env    *env
	stack  stack
	width  int
	height int
}

func newModel(ctx context.Context, opts Options) model {
	e := &env{
		ctx:      ctx,
		session:  opts.Session,
		run:      opts.Run,
		markdown: components.NewMarkdown(opts.MarkdownStyle),
	}
	m := model{env: e}
	m.stack.screens = []screen{newProfileScreen(e)}
	return m
}

func (m model) Init() tea.Cmd {
	return m.stack.active().Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.stack.update(msg)
	return m, cmd
}

func (m model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.stack.active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)
	footer := layout.RenderFooter(append(active.Hints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}), m.width)

	content := active.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// status shows how many questions are answered.
func (m model) status() string {
	s := m.env.session
	return fmt.Sprintf("%d/%d answered", s.Answers().Len(), len(s.Catalog().Questions))
}

// Run starts the survey and blocks until the user quits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("survey: %w", err)
	}
	return nil
}
