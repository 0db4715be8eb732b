package diagnosis

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/abhisek/aisurvival/internal/course"
	"github.com/abhisek/aisurvival/internal/questionnaire"
)

var classificationSystemTemplate = template.Must(template.New("classification").Parse(`# Context
You assess how far along a person is in using AI at work. Using the reference material, the user's questionnaire answers and their profile, decide whether the user is a beginner or intermediate and above.

# Reference materials
{{.ReferenceText}}

# Rules
1. A beginner rarely or never uses AI or automation tools and works mostly on routine tasks.
2. Intermediate and above already uses AI in part of their work or does analytical or creative work.
3. Answer with exactly one of: {{.Levels}}.`))

var recommendationSystemTemplate = template.Must(template.New("recommendation").Parse(`# Context
The user already uses AI to some degree. Using the reference material, the user's questionnaire answers and their profile, pick the single course that would help them most.

# Reference materials
{{.ReferenceText}}

# Courses
{{range .Courses}}- {{.ID}}: {{.Description}}
{{end}}
# Rules
1. Prefer the course closest to the user's occupation and skills.
2. Answer with exactly one course id from the list.`))

var narrativeSystemTemplate = template.Must(template.New("narrative").Parse(`# Context
Score each of the user's answers against the reference material and the rubric, add up all scores, then present the diagnosis and concrete countermeasures. Write the whole report in {{.Language}}.

# Reference materials
{{.ReferenceText}}

{{.Rubric}}
# Thinking steps
1. Score each answer using the rubric.
2. Add the scores of all answers.
3. Determine the tier that contains the total.
4. Propose actions based on the diagnosis and the user's profile.

# Output format
# Score calculation

| Question | User answer | Score |
|------|--------------|--------|
{{range .Labels}}| {{.}} | [answer] | [points] |
{{end}}
# Total score
Total score = [formula] = [total] points

# Diagnosis
- Score range: [range] ([tier])
- [detailed explanation of the diagnosis]

# Action plan
## Short term
- [action]
## Long term
- [action]

# Rules
1. Score strictly by the rubric and the reference material.
2. The total is the sum of every question's score.
3. Choose the tier by the range that contains the total.
4. Tailor the action plan to the user's industry, occupation and skills.
5. Write tables in markdown.

{{.Profile}}`))

type courseLine struct {
	ID          string
	Description string
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildClassificationSystem(referenceText string) (string, error) {
	return render(classificationSystemTemplate, map[string]any{
		"ReferenceText": referenceText,
		"Levels":        strings.Join(Levels(), ", "),
	})
}

func buildRecommendationSystem(referenceText string) (string, error) {
	var lines []courseLine
	for _, c := range course.Categories() {
		lines = append(lines, courseLine{ID: string(c), Description: course.Info(c).Description})
	}
	return render(recommendationSystemTemplate, map[string]any{
		"ReferenceText": referenceText,
		"Courses":       lines,
	})
}

func buildNarrativeSystem(referenceText string, rubric Rubric, language string, p questionnaire.Profile) (string, error) {
	labels := make([]string, len(rubric.Questions))
	for i, q := range rubric.Questions {
		labels[i] = q.Label
	}
	return render(narrativeSystemTemplate, map[string]any{
		"Language":      language,
		"ReferenceText": referenceText,
		"Rubric":        rubric.RenderInstruction(),
		"Labels":        labels,
		"Profile":       questionnaire.ComposeProfileBlock(p),
	})
}

// stageUserMessage is the user turn of the structured stages: the answers
// followed by the profile.
func stageUserMessage(in StageInput) string {
	return questionnaire.FormatResponses(in.Answers) + questionnaire.ComposeProfileBlock(in.Profile)
}
