package diagnosis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// QuestionScore is the points awarded per option of one question.
type QuestionScore struct {
	QuestionID string
	Label      string // "Q1"
	Points     map[string]int
	Inverted   bool // only affects the rendered wording
}

// Tier is an inclusive total-score range with its verdict.
type Tier struct {
	Name        string
	Min, Max    int
	Description string
}

// Rubric is the scoring scheme the narrative stage asks the model to apply.
type Rubric struct {
	Questions []QuestionScore
	Tiers     []Tier
}

// DefaultRubric scores Q1-Q3 as A=3, B=2, C=1 and Q4 inverted as A=1, B=2,
// C=3. Totals fall in 4-12: 4-6 safe, 7-9 caution, 10-12 danger.
func DefaultRubric() Rubric {
	straight := map[string]int{"A": 3, "B": 2, "C": 1}
	inverted := map[string]int{"A": 1, "B": 2, "C": 3}
	return Rubric{
		Questions: []QuestionScore{
			{QuestionID: "q1", Label: "Q1", Points: straight},
			{QuestionID: "q2", Label: "Q2", Points: straight},
			{QuestionID: "q3", Label: "Q3", Points: straight},
			{QuestionID: "q4", Label: "Q4", Points: inverted, Inverted: true},
		},
		Tiers: []Tier{
			{Name: "safe", Min: 4, Max: 6, Description: "low risk: your work is hard for AI to replace"},
			{Name: "caution", Min: 7, Max: 9, Description: "moderate risk: parts of your work are likely to be automated"},
			{Name: "danger", Min: 10, Max: 12, Description: "high risk: much of your work could be replaced by AI"},
		},
	}
}

// score totals the points for option keys by question id. Every rubric
// question must be answered with a scored option.
func (r Rubric) score(keys map[string]string) (int, error) {
	total := 0
	for _, q := range r.Questions {
		key, ok := keys[q.QuestionID]
		if !ok {
			return 0, fmt.Errorf("no answer for %s", q.QuestionID)
		}
		p, ok := q.Points[key]
		if !ok {
			return 0, fmt.Errorf("%s: option %q is not scored", q.QuestionID, key)
		}
		total += p
	}
	return total, nil
}

// tierFor returns the tier containing total.
func (r Rubric) tierFor(total int) (Tier, bool) {
	for _, t := range r.Tiers {
		if total >= t.Min && total <= t.Max {
			return t, true
		}
	}
	return Tier{}, false
}

// Range returns the lowest and highest reachable totals.
func (r Rubric) Range() (lo, hi int) {
	for _, q := range r.Questions {
		vals := sortedPoints(q.Points)
		if len(vals) == 0 {
			continue
		}
		lo += vals[0]
		hi += vals[len(vals)-1]
	}
	return lo, hi
}

// RenderInstruction renders the rubric as instruction text. The output is a
// pure function of the rubric.
func (r Rubric) RenderInstruction() string {
	var b strings.Builder

	b.WriteString("# Scoring rubric\n")
	for _, q := range r.Questions {
		label := q.Label
		if q.Inverted {
			label += " (inverted)"
		}
		b.WriteString("- " + label + ": " + renderPoints(q.Points) + "\n")
	}

	lo, hi := r.Range()
	labels := make([]string, len(r.Questions))
	for i, q := range r.Questions {
		labels[i] = q.Label
	}
	fmt.Fprintf(&b, "- Total = %s (range %d-%d)\n", strings.Join(labels, " + "), lo, hi)

	b.WriteString("\n# Score tiers\n")
	for _, t := range r.Tiers {
		fmt.Fprintf(&b, "- %d-%d points: %s (%s)\n", t.Min, t.Max, t.Name, t.Description)
	}

	if ex := r.example(); ex != "" {
		b.WriteString("\n# Calculation example\n")
		b.WriteString(ex)
	}
	return b.String()
}

// exampleAnswers is cycled over the rubric questions for the worked total.
var exampleAnswers = []string{"A", "B", "A", "C"}

// example works the first two questions through with options A and B, then
// totals a full example answer set and names its tier.
func (r Rubric) example() string {
	if len(r.Questions) < 2 {
		return ""
	}
	var (
		b     strings.Builder
		terms []string
		sum   int
	)
	b.WriteString("| Question | Answer | Score |\n|---|---|---|\n")
	for i, key := range []string{"A", "B"} {
		q := r.Questions[i]
		p, ok := q.Points[key]
		if !ok {
			return ""
		}
		fmt.Fprintf(&b, "| %s | %s | %d points |\n", q.Label, key, p)
		terms = append(terms, strconv.Itoa(p))
		sum += p
	}
	fmt.Fprintf(&b, "Subtotal: %s = %d points\n", strings.Join(terms, " + "), sum)

	keys := make(map[string]string, len(r.Questions))
	picked := make([]string, len(r.Questions))
	points := make([]string, len(r.Questions))
	for i, q := range r.Questions {
		key := exampleAnswers[i%len(exampleAnswers)]
		keys[q.QuestionID] = key
		picked[i] = key
		points[i] = strconv.Itoa(q.Points[key])
	}
	total, err := r.score(keys)
	if err != nil {
		return b.String()
	}
	tier, ok := r.tierFor(total)
	if !ok {
		return b.String()
	}
	fmt.Fprintf(&b, "Answers %s: %s = %d points (%s)\n",
		strings.Join(picked, ", "), strings.Join(points, " + "), total, tier.Name)
	return b.String()
}

func renderPoints(points map[string]int) string {
	keys := make([]string, 0, len(points))
	for k := range points {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		unit := "points"
		if points[k] == 1 {
			unit = "point"
		}
		parts[i] = fmt.Sprintf("%s = %d %s", k, points[k], unit)
	}
	return strings.Join(parts, ", ")
}

func sortedPoints(points map[string]int) []int {
	vals := make([]int, 0, len(points))
	for _, v := range points {
		vals = append(vals, v)
	}
	sort.Ints(vals)
	return vals
}
