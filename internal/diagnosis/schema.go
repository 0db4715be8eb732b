package diagnosis

import (
	"github.com/abhisek/aisurvival/internal/course"
	"github.com/abhisek/aisurvival/internal/llm"
)

// LevelSchema constrains the classification response.
var LevelSchema = &llm.Schema{
	Name:        "level-classification",
	Description: "Whether the user is an AI beginner or intermediate and above",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"appraisal_type": map[string]any{
				"type":        "string",
				"enum":        toAny(Levels()),
				"description": "Judge from the user's answers and profile whether they are a beginner or intermediate and above",
			},
		},
		"required":             []any{"appraisal_type"},
		"additionalProperties": false,
	},
}

// CourseSchema constrains the recommendation response.
var CourseSchema = &llm.Schema{
	Name:        "course-recommendation",
	Description: "The single most suitable course for the user",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"appraisal_type": map[string]any{
				"type":        "string",
				"enum":        toAny(course.Values()),
				"description": "Judge from the user's answers and profile which course fits best",
			},
		},
		"required":             []any{"appraisal_type"},
		"additionalProperties": false,
	},
}

// appraisal is the shape of both structured responses.
type appraisal struct {
	AppraisalType string `json:"appraisal_type"`
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
