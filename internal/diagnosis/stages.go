package diagnosis

import (
	"context"
	"fmt"

	"github.com/abhisek/aisurvival/internal/course"
	"github.com/abhisek/aisurvival/internal/llm"
	"github.com/abhisek/aisurvival/internal/questionnaire"
)

// Classifier decides the respondent's level. One request, no retries.
type Classifier struct {
	provider llm.Provider
	cfg      StageConfig
}

// NewClassifier creates a Classifier.
func NewClassifier(provider llm.Provider, cfg StageConfig) *Classifier {
	return &Classifier{provider: provider, cfg: cfg}
}

// Classify asks the model for the respondent's level. A response outside the
// level enum is returned as *llm.ErrSchemaViolation, never coerced.
func (c *Classifier) Classify(ctx context.Context, in StageInput) (Level, error) {
	ctx = llm.WithPurpose(ctx, PurposeClassification)

	system, err := buildClassificationSystem(in.ReferenceText)
	if err != nil {
		return "", fmt.Errorf("build classification prompt: %w", err)
	}

	v, err := generateAppraisal(ctx, c.provider, c.cfg, system, stageUserMessage(in), LevelSchema)
	if err != nil {
		return "", fmt.Errorf("classification: %w", err)
	}

	level, err := ParseLevel(v.value)
	if err != nil {
		return "", fmt.Errorf("classification: %w", v.violation(err))
	}
	return level, nil
}

// Recommender picks a course for non-beginners. One request, no retries.
type Recommender struct {
	provider llm.Provider
	cfg      StageConfig
}

// NewRecommender creates a Recommender.
func NewRecommender(provider llm.Provider, cfg StageConfig) *Recommender {
	return &Recommender{provider: provider, cfg: cfg}
}

// Recommend asks the model for the best course category.
func (r *Recommender) Recommend(ctx context.Context, in StageInput) (course.Category, error) {
	ctx = llm.WithPurpose(ctx, PurposeRecommendation)

	system, err := buildRecommendationSystem(in.ReferenceText)
	if err != nil {
		return "", fmt.Errorf("build recommendation prompt: %w", err)
	}

	v, err := generateAppraisal(ctx, r.provider, r.cfg, system, stageUserMessage(in), CourseSchema)
	if err != nil {
		return "", fmt.Errorf("recommendation: %w", err)
	}

	c, err := course.ParseCategory(v.value)
	if err != nil {
		return "", fmt.Errorf("recommendation: %w", v.violation(err))
	}
	return c, nil
}

// Narrator writes the scored report.
type Narrator struct {
	provider llm.Provider
	cfg      StageConfig
	rubric   Rubric
	language string
}

// NewNarrator creates a Narrator writing in language with rubric.
func NewNarrator(provider llm.Provider, cfg StageConfig, rubric Rubric, language string) *Narrator {
	if language == "" {
		language = DefaultConfig().Language
	}
	return &Narrator{provider: provider, cfg: cfg, rubric: rubric, language: language}
}

// Narrate sends one multimodal request: the rubric, reference text and
// profile as the system instruction, the answers plus the cover image as the
// user message. The model's text is returned verbatim.
func (n *Narrator) Narrate(ctx context.Context, in NarrativeInput) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeNarrative)

	system, err := buildNarrativeSystem(in.Material.Text, n.rubric, n.language, in.Profile)
	if err != nil {
		return "", fmt.Errorf("build narrative prompt: %w", err)
	}

	msg := llm.Message{Role: llm.RoleUser, Content: questionnaire.FormatResponses(in.Answers)}
	if cover := in.Material.Cover; len(cover.Data) > 0 {
		msg.Images = []llm.Image{{MIMEType: cover.MIMEType, Data: cover.Data}}
	}

	resp, err := n.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{msg},
		MaxTokens:   n.cfg.MaxTokens,
		Temperature: n.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("narrative: %w", err)
	}
	return resp.Text(), nil
}

type appraisalValue struct {
	value  string
	schema *llm.Schema
	raw    []byte
}

func (v appraisalValue) violation(err error) error {
	return &llm.ErrSchemaViolation{Schema: v.schema.Name, Content: v.raw, Err: err}
}

func generateAppraisal(ctx context.Context, p llm.Provider, cfg StageConfig, system, user string, schema *llm.Schema) (appraisalValue, error) {
	resp, err := p.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      schema,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
	if err != nil {
		return appraisalValue{}, err
	}

	var out appraisal
	if err := llm.DecodeStructured(schema, resp.Content, &out); err != nil {
		return appraisalValue{}, err
	}
	return appraisalValue{value: out.AppraisalType, schema: schema, raw: resp.Content}, nil
}
