// Package diagnosis runs the three generation stages of a survival
// diagnosis: level classification, course recommendation and the scored
// narrative report.
package diagnosis

import (
	"fmt"

	"github.com/abhisek/aisurvival/internal/questionnaire"
	"github.com/abhisek/aisurvival/internal/refdoc"
)

// Level is the respondent's AI proficiency as judged by the classifier.
type Level string

const (
	Beginner            Level = "beginner"
	IntermediateOrAbove Level = "intermediate_or_above"
)

// Levels returns the level ids in schema order.
func Levels() []string {
	return []string{string(Beginner), string(IntermediateOrAbove)}
}

// ParseLevel accepts only the two known ids.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case Beginner, IntermediateOrAbove:
		return Level(s), nil
	}
	return "", fmt.Errorf("unknown level %q", s)
}

// Purpose labels attached to each stage's requests.
const (
	PurposeClassification = "classification"
	PurposeRecommendation = "recommendation"
	PurposeNarrative      = "narrative"
)

// StageInput is what the classification and recommendation stages read.
type StageInput struct {
	Answers       questionnaire.Answers
	Profile       questionnaire.Profile
	ReferenceText string
}

// NarrativeInput is what the narrative stage reads.
type NarrativeInput struct {
	Answers  questionnaire.Answers
	Profile  questionnaire.Profile
	Material refdoc.Material
}

// StageConfig tunes one stage's request.
type StageConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// Config holds configuration for all stages.
type Config struct {
	// Language is the language the narrative report is written in.
	Language string `yaml:"language"`

	Classify  StageConfig `yaml:"classify"`
	Recommend StageConfig `yaml:"recommend"`
	Narrate   StageConfig `yaml:"narrate"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Language:  "Japanese",
		Classify:  StageConfig{MaxTokens: 256, Temperature: 0},
		Recommend: StageConfig{MaxTokens: 256, Temperature: 0},
		Narrate:   StageConfig{MaxTokens: 4096, Temperature: 0.3},
	}
}
