package survey

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aisurvival/internal/course"
	"github.com/abhisek/aisurvival/internal/pipeline"
	"github.com/abhisek/aisurvival/internal/ui/layout"
	"github.com/abhisek/aisurvival/internal/ui/theme"
)

// reportScreen shows the finished diagnosis in a scrollable view.
type reportScreen struct {
	env    *env
	result *pipeline.Result
	vp     viewport.Model
	width  int
}

var _ screen = (*reportScreen)(nil)

func newReportScreen(e *env, res *pipeline.Result) *reportScreen {
	return &reportScreen{env: e, result: res, vp: viewport.New()}
}

func (r *reportScreen) Init() tea.Cmd { return nil }

func (r *reportScreen) Title() string { return "Result" }

func (r *reportScreen) Hints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "r", Description: "Diagnose again"},
		{Key: "q", Description: "Quit"},
	}
}

func (r *reportScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "r":
			return r, startOver(r.env)
		case "q":
			return r, tea.Quit
		}
	}
	var cmd tea.Cmd
	r.vp, cmd = r.vp.Update(msg)
	return r, cmd
}

func (r *reportScreen) View(width, height int) string {
	summary := RenderSummary(r.result, width-4)
	vpHeight := max(height-lipgloss.Height(summary)-1, 3)

	r.vp.SetHeight(vpHeight)
	if r.width != width {
		// Rewrap on width change only; SetContent keeps the offset.
		r.width = width
		r.vp.SetWidth(width)
		r.vp.SetContent(r.env.markdown.Render(r.result.Narrative, width-2))
	}

	return summary + "\n" + r.vp.View()
}

// RenderSummary renders the level and course lines shown above a report.
func RenderSummary(res *pipeline.Result, width int) string {
	var b strings.Builder
	if res.Beginner() {
		b.WriteString(theme.Badge("初心者", theme.BeginnerBadge))
		b.WriteString("  ")
		b.WriteString(theme.Body.Render("まずはChatGPTの基本から始めましょう"))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(res.Course))
	} else {
		b.WriteString(theme.Badge("中級者以上", theme.AdvancedBadge))
		info := course.Info(course.Category(res.Course))
		b.WriteString("  ")
		b.WriteString(theme.Selected.Render("おすすめ講座: " + info.Title))
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(max(width, 20)).Render(info.Description))
		if res.AssetPath != "" {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(res.AssetPath))
		}
	}
	return b.String()
}
