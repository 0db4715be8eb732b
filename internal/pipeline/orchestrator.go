package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/aisurvival/internal/apperr"
	"github.com/abhisek/aisurvival/internal/course"
	"github.com/abhisek/aisurvival/internal/diagnosis"
	"github.com/abhisek/aisurvival/internal/llm"
	"github.com/abhisek/aisurvival/internal/logging"
)

// ErrNotReady is returned by Run when the session has no profile or has
// unanswered questions. No stage runs in that case.
var ErrNotReady = errors.New("session not ready")

// Result is the assembled outcome of a successful run. It depends only on
// the session inputs and the service responses; run identity and timing
// live in RunInfo.
type Result struct {
	Narrative string          `json:"narrative"`
	Level     diagnosis.Level `json:"level"`

	// Course is the recommended category id, or the beginner fallback link.
	Course string `json:"course"`

	// AssetPath is empty on the beginner branch.
	AssetPath string `json:"asset_path,omitempty"`
}

// RunInfo identifies one run of a session.
type RunInfo struct {
	ID         string
	SessionID  string
	StartedAt  time.Time
	FinishedAt time.Time // zero while the run is in flight
}

// Beginner reports whether the result took the beginner branch.
func (r *Result) Beginner() bool { return r.Level == diagnosis.Beginner }

// Orchestrator runs classification, the optional recommendation and asset
// lookup, and the narrative stage for a Session. Every stage is attempted
// once; the first failure ends the run.
type Orchestrator struct {
	classifier  *diagnosis.Classifier
	recommender *diagnosis.Recommender
	narrator    *diagnosis.Narrator
	resolver    *course.Resolver

	observer Observer
	recorder Recorder
	log      *logging.Logger
	now      func() time.Time
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver registers fn to receive every state transition.
func WithObserver(fn Observer) Option {
	return func(o *Orchestrator) { o.observer = fn }
}

// WithRecorder persists every run outcome through r.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) { o.recorder = r }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an Orchestrator whose stages all talk to provider.
func New(provider llm.Provider, cfg diagnosis.Config, resolver *course.Resolver, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		classifier:  diagnosis.NewClassifier(provider, cfg.Classify),
		recommender: diagnosis.NewRecommender(provider, cfg.Recommend),
		narrator:    diagnosis.NewNarrator(provider, cfg.Narrate, diagnosis.DefaultRubric(), cfg.Language),
		resolver:    resolver,
		log:         logging.Nop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes one full pipeline over s. On success the Result is stored on
// the session and returned. On failure the session moves to StateFailed,
// keeps the error, and publishes no Result.
func (o *Orchestrator) Run(ctx context.Context, s *Session) (*Result, error) {
	if err := o.ready(s); err != nil {
		return nil, err
	}

	info := RunInfo{ID: uuid.NewString(), SessionID: s.ID, StartedAt: o.now()}
	ctx = llm.WithRunID(ctx, info.ID)
	log := o.log.With("session_id", s.ID, "run_id", info.ID)

	s.result = nil
	s.err = nil
	s.run = info
	o.transition(s, StateIdle, log)

	res, err := o.execute(ctx, s, log)
	info.FinishedAt = o.now()
	s.run = info
	elapsed := info.FinishedAt.Sub(info.StartedAt)

	if err != nil {
		s.err = err
		o.transition(s, StateFailed, log)
		log.Warn("diagnosis failed",
			"error_kind", apperr.Kind(err),
			"error", err,
			"duration_ms", elapsed.Milliseconds())
	} else {
		s.result = res
		o.transition(s, StateComplete, log)
		log.Info("diagnosis complete",
			"level", res.Level,
			"course", res.Course,
			"duration_ms", elapsed.Milliseconds())
	}

	o.record(ctx, s, info.ID, res, err, elapsed, log)

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (o *Orchestrator) ready(s *Session) error {
	if _, ok := s.Profile(); !ok {
		return fmt.Errorf("%w: profile not submitted", ErrNotReady)
	}
	if missing := s.answers.Missing(s.catalog); len(missing) > 0 {
		return fmt.Errorf("%w: unanswered questions %s", ErrNotReady, strings.Join(missing, ", "))
	}
	return nil
}

func (o *Orchestrator) execute(ctx context.Context, s *Session, log *logging.Logger) (*Result, error) {
	profile, _ := s.Profile()
	answers := s.Answers()

	o.transition(s, StateClassifying, log)
	text, err := s.cache.Text(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference text: %w", err)
	}
	in := diagnosis.StageInput{Answers: answers, Profile: profile, ReferenceText: text}

	level, err := o.classifier.Classify(ctx, in)
	if err != nil {
		return nil, err
	}
	log.Debug("level classified", "level", level)

	courseID, assetPath := course.BeginnerFallbackURL, ""
	if level != diagnosis.Beginner {
		o.transition(s, StateRecommending, log)
		category, err := o.recommender.Recommend(ctx, in)
		if err != nil {
			return nil, err
		}

		o.transition(s, StateResolvingAsset, log)
		courseID = string(category)
		assetPath = o.resolver.Resolve(category)
		log.Debug("course resolved", "course", category, "asset", assetPath)
	} else {
		o.transition(s, StateResolvingAsset, log)
	}

	o.transition(s, StateNarrating, log)
	material, err := s.cache.Material(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reference material: %w", err)
	}
	narrative, err := o.narrator.Narrate(ctx, diagnosis.NarrativeInput{
		Answers:  answers,
		Profile:  profile,
		Material: material,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Narrative: narrative,
		Level:     level,
		Course:    courseID,
		AssetPath: assetPath,
	}, nil
}

func (o *Orchestrator) transition(s *Session, to State, log *logging.Logger) {
	s.state = to
	log.Debug("pipeline state", "state", to)
	if o.observer != nil {
		o.observer(to)
	}
}

func (o *Orchestrator) record(ctx context.Context, s *Session, runID string, res *Result, runErr error, elapsed time.Duration, log *logging.Logger) {
	if o.recorder == nil {
		return
	}
	profile, _ := s.Profile()
	out := Outcome{
		RunID:    runID,
		Session:  s.ID,
		Profile:  profile,
		Answers:  s.Answers(),
		Result:   res,
		Err:      runErr,
		Duration: elapsed,
	}
	// A cancelled run is still recorded.
	if err := o.recorder.Record(context.WithoutCancel(ctx), out); err != nil {
		log.Warn("failed to record run", "error", err)
	}
}
