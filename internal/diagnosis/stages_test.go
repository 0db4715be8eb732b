package diagnosis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aisurvival/internal/apperr"
	"github.com/abhisek/aisurvival/internal/course"
	"github.com/abhisek/aisurvival/internal/llm"
	"github.com/abhisek/aisurvival/internal/questionnaire"
	"github.com/abhisek/aisurvival/internal/refdoc"
)

func testProfile(t *testing.T) questionnaire.Profile {
	t.Helper()
	p, err := questionnaire.NewProfile("IT・情報通信", "専門・技術職（IT・エンジニア）", 12, []string{"データ分析", "IT・プログラミング"})
	require.NoError(t, err)
	return p
}

func testAnswers(t *testing.T) questionnaire.Answers {
	t.Helper()
	c := questionnaire.DefaultCatalog()
	var a questionnaire.Answers
	for i, key := range []string{"A", "B", "A", "C"} {
		require.NoError(t, a.Answer(c, c.Questions[i].ID, key))
	}
	return a
}

func testStageInput(t *testing.T) StageInput {
	return StageInput{Answers: testAnswers(t), Profile: testProfile(t), ReferenceText: "## Page 1\n\nreference"}
}

func TestClassify(t *testing.T) {
	for _, level := range []Level{Beginner, IntermediateOrAbove} {
		t.Run(string(level), func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockJSON(map[string]string{"appraisal_type": string(level)}))
			cfg := DefaultConfig().Classify

			got, err := NewClassifier(mock, cfg).Classify(context.Background(), testStageInput(t))
			require.NoError(t, err)
			assert.Equal(t, level, got)

			require.Len(t, mock.Calls, 1)
			req := mock.Calls[0]
			assert.Equal(t, LevelSchema, req.Schema)
			assert.Equal(t, cfg.MaxTokens, req.MaxTokens)
			assert.Contains(t, req.System, "## Page 1\n\nreference")
			assert.Contains(t, req.Messages[0].Content, "User answers:\n")
			assert.Contains(t, req.Messages[0].Content, "- Occupation: 専門・技術職（IT・エンジニア）\n")
			assert.Empty(t, req.Messages[0].Images)
			assert.Equal(t, []string{PurposeClassification}, mock.Purposes)
		})
	}
}

func TestClassifyRejectsUnknownLevel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]string{"appraisal_type": "expert"}))

	_, err := NewClassifier(mock, DefaultConfig().Classify).Classify(context.Background(), testStageInput(t))
	require.Error(t, err)

	var sv *llm.ErrSchemaViolation
	assert.True(t, errors.As(err, &sv))
	assert.True(t, errors.Is(err, apperr.ErrSchemaViolation))
	assert.Equal(t, 1, mock.CallCount(), "no retry on violation")
}

func TestClassifyServiceError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrAuth{Err: errors.New("bad key")}})

	_, err := NewClassifier(mock, DefaultConfig().Classify).Classify(context.Background(), testStageInput(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrService))
	assert.False(t, errors.Is(err, apperr.ErrSchemaViolation))
	assert.Equal(t, 1, mock.CallCount())
}

func TestRecommend(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]string{"appraisal_type": string(course.ImageAI)}))

	got, err := NewRecommender(mock, DefaultConfig().Recommend).Recommend(context.Background(), testStageInput(t))
	require.NoError(t, err)
	assert.Equal(t, course.ImageAI, got)

	req := mock.Calls[0]
	assert.Equal(t, CourseSchema, req.Schema)
	for _, c := range course.Categories() {
		assert.Contains(t, req.System, "- "+string(c)+": ")
	}
	assert.Equal(t, []string{PurposeRecommendation}, mock.Purposes)
}

func TestRecommendRejectsUnknownCourse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(map[string]string{"appraisal_type": "Cooking"}))

	_, err := NewRecommender(mock, DefaultConfig().Recommend).Recommend(context.Background(), testStageInput(t))
	assert.True(t, errors.Is(err, apperr.ErrSchemaViolation))
}

func TestNarrate(t *testing.T) {
	report := "# Score calculation\n\n| Q1 | A | 3 |\n\nTotal score = 11 points"
	mock := llm.NewMockProvider(llm.MockText(report))
	cfg := DefaultConfig()

	in := NarrativeInput{
		Answers: testAnswers(t),
		Profile: testProfile(t),
		Material: refdoc.Material{
			Text:  "## Page 1\n\nreference",
			Cover: refdoc.Image{MIMEType: "image/png", Data: []byte("png")},
		},
	}
	got, err := NewNarrator(mock, cfg.Narrate, DefaultRubric(), cfg.Language).Narrate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, report, got)

	req := mock.Calls[0]
	assert.Nil(t, req.Schema)
	assert.Equal(t, cfg.Narrate.Temperature, req.Temperature)
	assert.Contains(t, req.System, DefaultRubric().RenderInstruction())
	assert.Contains(t, req.System, "- Industry: IT・情報通信\n")
	require.Len(t, req.Messages, 1)
	assert.Equal(t, questionnaire.FormatResponses(in.Answers), req.Messages[0].Content)
	require.Len(t, req.Messages[0].Images, 1)
	assert.Equal(t, "image/png", req.Messages[0].Images[0].MIMEType)
	assert.Equal(t, []byte("png"), req.Messages[0].Images[0].Data)
	assert.Equal(t, []string{PurposeNarrative}, mock.Purposes)
}

func TestNarrateServiceError(t *testing.T) {
	mock := llm.NewMockProvider()

	_, err := NewNarrator(mock, DefaultConfig().Narrate, DefaultRubric(), "").Narrate(context.Background(), NarrativeInput{})
	assert.True(t, errors.Is(err, apperr.ErrService))
}
