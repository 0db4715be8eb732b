package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aisurvival/internal/llm"
	"github.com/abhisek/aisurvival/internal/questionnaire"
)

func TestSession_ProfileSetOnce(t *testing.T) {
	s := newTestSession(t, &fakeSource{})

	p, err := questionnaire.NewProfile("", "", 1, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, s.SetProfile(p), ErrProfileSubmitted)

	got, ok := s.Profile()
	require.True(t, ok)
	assert.Equal(t, "製造", got.Industry)
}

func TestSession_RejectsUnknownAnswer(t *testing.T) {
	s := newTestSession(t, &fakeSource{})
	assert.Error(t, s.Answer("q1", "Z"))
	assert.Error(t, s.Answer("q9", "A"))
	assert.Equal(t, 4, s.Answers().Len())
}

func TestSession_Reset(t *testing.T) {
	src := &fakeSource{}
	s := newTestSession(t, src)
	o := newTestOrchestrator(llm.NewMockProvider(append(beginnerResponses(), beginnerResponses()...)...))

	_, err := o.Run(context.Background(), s)
	require.NoError(t, err)
	oldID := s.ID

	s.Reset()
	assert.NotEqual(t, oldID, s.ID)
	assert.Equal(t, StateIdle, s.State())
	assert.Nil(t, s.Result())
	assert.NoError(t, s.Err())
	assert.Zero(t, s.LastRun())
	assert.Zero(t, s.Answers().Len())
	_, ok := s.Profile()
	assert.False(t, ok)

	// The cache starts over after a reset.
	p, err := questionnaire.NewProfile("", "", 2, nil)
	require.NoError(t, err)
	require.NoError(t, s.SetProfile(p))
	for _, id := range s.Catalog().IDs() {
		require.NoError(t, s.Answer(id, "B"))
	}
	_, err = o.Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.textCalls.Load())
}

func TestStateSteps(t *testing.T) {
	assert.Equal(t, 1, StateClassifying.Step())
	assert.Equal(t, 4, StateNarrating.Step())
	assert.Zero(t, StateIdle.Step())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateNarrating.Terminal())
}
