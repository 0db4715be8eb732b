package diagnosis

import (
	"strings"
	"testing"
)

func TestRubricScore(t *testing.T) {
	r := DefaultRubric()

	tests := []struct {
		name  string
		keys  map[string]string
		total int
		tier  string
	}{
		{"danger boundary", map[string]string{"q1": "A", "q2": "B", "q3": "A", "q4": "C"}, 11, "danger"},
		{"minimum", map[string]string{"q1": "C", "q2": "C", "q3": "C", "q4": "A"}, 4, "safe"},
		{"maximum", map[string]string{"q1": "A", "q2": "A", "q3": "A", "q4": "C"}, 12, "danger"},
		{"caution", map[string]string{"q1": "B", "q2": "B", "q3": "B", "q4": "B"}, 8, "caution"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total, err := r.score(tt.keys)
			if err != nil {
				t.Fatalf("score: %v", err)
			}
			if total != tt.total {
				t.Fatalf("expected total %d, got %d", tt.total, total)
			}
			tier, ok := r.tierFor(total)
			if !ok || tier.Name != tt.tier {
				t.Fatalf("expected tier %q, got %q (found=%v)", tt.tier, tier.Name, ok)
			}
		})
	}
}

func TestRubricScoreRejectsIncompleteAnswers(t *testing.T) {
	r := DefaultRubric()

	if _, err := r.score(map[string]string{"q1": "A", "q2": "B", "q3": "A"}); err == nil {
		t.Fatal("expected an error for a missing answer")
	}
	if _, err := r.score(map[string]string{"q1": "A", "q2": "B", "q3": "A", "q4": "D"}); err == nil {
		t.Fatal("expected an error for an unscored option")
	}
}

func TestRubricTiersCoverRange(t *testing.T) {
	r := DefaultRubric()
	lo, hi := r.Range()
	if lo != 4 || hi != 12 {
		t.Fatalf("expected range 4-12, got %d-%d", lo, hi)
	}

	for total := lo; total <= hi; total++ {
		if _, ok := r.tierFor(total); !ok {
			t.Fatalf("total %d has no tier", total)
		}
	}
	if _, ok := r.tierFor(13); ok {
		t.Fatal("13 is out of range and must have no tier")
	}
}

func TestRenderInstructionSkipsUnscorableExample(t *testing.T) {
	r := DefaultRubric()
	r.Questions[3].Points = map[string]int{"A": 1, "B": 2}

	got := r.RenderInstruction()
	if !strings.Contains(got, "Subtotal: 3 + 2 = 5 points\n") {
		t.Fatalf("expected the two-question subtotal, got:\n%s", got)
	}
	if strings.Contains(got, "Answers A, B, A, C") {
		t.Fatalf("worked total must be omitted when an example answer is not scored, got:\n%s", got)
	}
}

func TestRenderInstruction(t *testing.T) {
	got := DefaultRubric().RenderInstruction()

	for _, want := range []string{
		"- Q1: A = 3 points, B = 2 points, C = 1 point\n",
		"- Q4 (inverted): A = 1 point, B = 2 points, C = 3 points\n",
		"- Total = Q1 + Q2 + Q3 + Q4 (range 4-12)\n",
		"- 4-6 points: safe",
		"- 7-9 points: caution",
		"- 10-12 points: danger",
		"Subtotal: 3 + 2 = 5 points\n",
		"Answers A, B, A, C: 3 + 2 + 3 + 3 = 11 points (danger)\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}

	// Rendering is byte-stable across calls despite map iteration.
	for range 10 {
		if again := DefaultRubric().RenderInstruction(); again != got {
			t.Fatalf("rendering changed between calls:\n%s\n---\n%s", got, again)
		}
	}
}

func TestNarrativeSystemEmbedsRubricVerbatim(t *testing.T) {
	r := DefaultRubric()
	system, err := buildNarrativeSystem("## Page 1\n\nreference", r, "Japanese", testProfile(t))
	if err != nil {
		t.Fatalf("buildNarrativeSystem: %v", err)
	}

	for _, want := range []string{
		r.RenderInstruction(),
		"## Page 1\n\nreference",
		"Write the whole report in Japanese.",
		"| Q4 | [answer] | [points] |",
	} {
		if !strings.Contains(system, want) {
			t.Fatalf("expected %q in narrative instruction", want)
		}
	}
	if !strings.HasSuffix(system, "- Years of experience: 12\n- Skills: IT・プログラミング, データ分析\n") {
		t.Fatalf("profile block missing at the end:\n%s", system)
	}
}
