package questionnaire

import (
	"strconv"
	"strings"
)

// FormatResponses renders answers as the user-message block of every stage:
// a header line, then one Question/Answer pair per entry in insertion order.
func FormatResponses(a Answers) string {
	var b strings.Builder
	b.WriteString("User answers:\n")
	for _, e := range a.entries {
		b.WriteString("Question: ")
		b.WriteString(e.Question)
		b.WriteString("\nAnswer: ")
		b.WriteString(e.Answer)
		b.WriteString("\n\n")
	}
	return b.String()
}

// ComposeProfileBlock renders the profile for the system instruction.
// Industry, occupation and skills lines are omitted when not given.
func ComposeProfileBlock(p Profile) string {
	var b strings.Builder
	b.WriteString("User profile:\n")
	if p.Industry != "" {
		b.WriteString("- Industry: " + p.Industry + "\n")
	}
	if p.Occupation != "" {
		b.WriteString("- Occupation: " + p.Occupation + "\n")
	}
	b.WriteString("- Years of experience: " + strconv.Itoa(p.ExperienceYears) + "\n")
	if len(p.Skills) > 0 {
		b.WriteString("- Skills: " + strings.Join(p.Skills, ", ") + "\n")
	}
	return b.String()
}
