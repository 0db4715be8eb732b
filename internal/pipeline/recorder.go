package pipeline

import (
	"context"
	"time"

	"github.com/abhisek/aisurvival/internal/apperr"
	"github.com/abhisek/aisurvival/internal/questionnaire"
	"github.com/abhisek/aisurvival/internal/store"
)

// Outcome is everything known about a finished run, successful or not.
type Outcome struct {
	RunID    string
	Session  string
	Profile  questionnaire.Profile
	Answers  questionnaire.Answers
	Result   *Result // nil when Err is set
	Err      error
	Duration time.Duration
}

// Recorder persists run outcomes. A failing Recorder never fails the run.
type Recorder interface {
	Record(ctx context.Context, out Outcome) error
}

// StoreRecorder writes outcomes to the run repository.
type StoreRecorder struct {
	Runs store.RunRepo
}

// NewStoreRecorder creates a StoreRecorder.
func NewStoreRecorder(runs store.RunRepo) *StoreRecorder {
	return &StoreRecorder{Runs: runs}
}

// Record implements Recorder.
func (r *StoreRecorder) Record(ctx context.Context, out Outcome) error {
	return r.Runs.AppendRun(ctx, runData(out))
}

func runData(out Outcome) store.RunData {
	entries := out.Answers.Entries()
	answers := make([]store.AnswerEntry, len(entries))
	for i, e := range entries {
		answers[i] = store.AnswerEntry{Question: e.Question, Answer: e.Answer}
	}

	d := store.RunData{
		RunID:           out.RunID,
		SessionID:       out.Session,
		Industry:        out.Profile.Industry,
		Occupation:      out.Profile.Occupation,
		ExperienceYears: out.Profile.ExperienceYears,
		Skills:          out.Profile.Skills,
		Answers:         answers,
		DurationMs:      out.Duration.Milliseconds(),
	}
	if out.Err != nil {
		d.ErrorKind = apperr.Kind(out.Err)
		d.ErrorMessage = out.Err.Error()
		return d
	}
	d.Success = true
	d.Level = string(out.Result.Level)
	d.Course = out.Result.Course
	d.AssetPath = out.Result.AssetPath
	d.Narrative = out.Result.Narrative
	return d
}
