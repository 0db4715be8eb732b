package survey

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aisurvival/internal/questionnaire"
	"github.com/abhisek/aisurvival/internal/ui/components"
	"github.com/abhisek/aisurvival/internal/ui/layout"
	"github.com/abhisek/aisurvival/internal/ui/theme"
)

type profileField int

const (
	fieldIndustry profileField = iota
	fieldOccupation
	fieldExperience
	fieldSkills
)

// profileScreen collects the profile one field at a time. Esc steps back a
// field. The profile is submitted to the session only when a run starts, so
// it can still be edited while answering questions.
type profileScreen struct {
	env   *env
	field profileField

	industry   components.Choice
	occupation components.Choice
	experience components.NumberInput
	skills     components.Checklist

	profile questionnaire.Profile
	err     string
}

var _ screen = (*profileScreen)(nil)

func newProfileScreen(e *env) *profileScreen {
	return &profileScreen{
		env:        e,
		industry:   components.NewChoice("業種を選択してください", questionnaire.Industries, 0),
		occupation: components.NewChoice("職種を選択してください", questionnaire.Occupations, 0),
		experience: components.NewNumberInput(questionnaire.DefaultExperience, questionnaire.MinExperience, questionnaire.MaxExperience),
		skills:     components.NewChecklist("スキル・専門分野を選択してください（複数選択可）", questionnaire.Skills),
	}
}

func (p *profileScreen) Init() tea.Cmd { return nil }

func (p *profileScreen) Title() string { return "Profile" }

func (p *profileScreen) Hints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Move"}}
	switch p.field {
	case fieldExperience:
		hints = []layout.KeyHint{{Key: "0-9", Description: "Years"}}
	case fieldSkills:
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	if p.field > fieldIndustry {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return hints
}

func (p *profileScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		if p.field > fieldIndustry {
			p.field--
			p.err = ""
			p.industry.Chosen, p.occupation.Chosen, p.skills.Finished = -1, -1, false
		}
		return p, nil
	}

	var cmd tea.Cmd
	switch p.field {
	case fieldIndustry:
		p.industry, cmd = p.industry.Update(msg)
		if p.industry.Done() {
			p.field = fieldOccupation
		}
	case fieldOccupation:
		p.occupation, cmd = p.occupation.Update(msg)
		if p.occupation.Done() {
			p.field = fieldExperience
			cmd = p.experience.Init()
		}
	case fieldExperience:
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			if _, err := p.experience.Value(); err != nil {
				p.err = err.Error()
				return p, nil
			}
			p.err = ""
			p.field = fieldSkills
			return p, nil
		}
		p.experience, cmd = p.experience.Update(msg)
	case fieldSkills:
		p.skills, cmd = p.skills.Update(msg)
		if p.skills.Finished {
			p.skills.Finished = false
			return p, p.submit()
		}
	}
	return p, cmd
}

// submit validates the form and moves on to the first question.
func (p *profileScreen) submit() tea.Cmd {
	years, _ := p.experience.Value()
	profile, err := questionnaire.NewProfile(
		p.industry.Options[p.industry.Selected],
		p.occupation.Options[p.occupation.Selected],
		years,
		p.skills.Values(),
	)
	if err != nil {
		p.err = err.Error()
		return nil
	}
	p.profile = profile
	return push(newQuestionScreen(p.env, &p.profile, 0))
}

func (p *profileScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("AI時代のサバイバル診断"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("あなたの仕事はAIに奪われる？それとも進化する？"))
	b.WriteString("\n\n")

	switch p.field {
	case fieldIndustry:
		b.WriteString(p.industry.View())
	case fieldOccupation:
		b.WriteString(p.occupation.View())
	case fieldExperience:
		b.WriteString(theme.Body.Bold(true).Render("経験年数を入力してください"))
		b.WriteString("\n\n  ")
		b.WriteString(p.experience.View())
		b.WriteString("\n")
	case fieldSkills:
		b.WriteString(p.skills.View())
	}

	if _, ok := p.env.session.Profile(); ok {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("プロフィールを変更すると、回答を引き継いだ新しいセッションで診断します"))
	}
	if p.err != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(p.err))
	}
	return b.String()
}
