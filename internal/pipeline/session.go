// Package pipeline sequences the diagnosis stages for one respondent session
// and assembles their outputs into a single Result.
package pipeline

import (
	"errors"

	"github.com/google/uuid"

	"github.com/abhisek/aisurvival/internal/questionnaire"
	"github.com/abhisek/aisurvival/internal/refdoc"
)

// ErrProfileSubmitted is returned when a profile is set twice without a
// Reset in between.
var ErrProfileSubmitted = errors.New("profile already submitted")

// Session is the state of one respondent: profile, answers, the reference
// material cache and the outcome of the latest run. Profile and answers
// survive a failed run; only Reset clears them.
//
// A Session is not safe for concurrent runs. The host runs at most one
// pipeline at a time per session.
type Session struct {
	ID string

	catalog questionnaire.Catalog
	cache   *refdoc.Cache

	profile *questionnaire.Profile
	answers questionnaire.Answers

	state  State
	run    RunInfo
	result *Result
	err    error
}

// NewSession starts a session over the default question catalog.
func NewSession(cache *refdoc.Cache) *Session {
	return &Session{
		ID:      uuid.NewString(),
		catalog: questionnaire.DefaultCatalog(),
		cache:   cache,
		state:   StateIdle,
	}
}

// Catalog returns the questions this session is answered against.
func (s *Session) Catalog() questionnaire.Catalog { return s.catalog }

// Cache returns the session's reference material cache.
func (s *Session) Cache() *refdoc.Cache { return s.cache }

// SetProfile submits the respondent profile. It can be set once per session.
func (s *Session) SetProfile(p questionnaire.Profile) error {
	if s.profile != nil {
		return ErrProfileSubmitted
	}
	s.profile = &p
	return nil
}

// Profile returns the submitted profile, if any.
func (s *Session) Profile() (questionnaire.Profile, bool) {
	if s.profile == nil {
		return questionnaire.Profile{}, false
	}
	return *s.profile, true
}

// Answer records the option key chosen for question id. Answering again
// replaces the earlier choice.
func (s *Session) Answer(id, key string) error {
	return s.answers.Answer(s.catalog, id, key)
}

// Answers returns a copy of the answers so far.
func (s *Session) Answers() questionnaire.Answers { return s.answers.Clone() }

// State returns the state of the latest run.
func (s *Session) State() State { return s.state }

// Result returns the latest successful result, or nil.
func (s *Session) Result() *Result { return s.result }

// Err returns the error of the latest failed run, or nil.
func (s *Session) Err() error { return s.err }

// LastRun identifies the latest run. The zero value means none has started.
func (s *Session) LastRun() RunInfo { return s.run }

// Reset clears the profile, answers, run outcome and cached reference
// material, and gives the session a fresh id.
func (s *Session) Reset() {
	s.ID = uuid.NewString()
	s.profile = nil
	s.answers.Clear()
	s.state = StateIdle
	s.run = RunInfo{}
	s.result = nil
	s.err = nil
	if s.cache != nil {
		s.cache.Reset()
	}
}
