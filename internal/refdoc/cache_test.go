package refdoc

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aisurvival/internal/apperr"
)

// fakeSource counts calls and can block until released.
type fakeSource struct {
	textCalls  atomic.Int32
	coverCalls atomic.Int32

	gate    chan struct{} // when non-nil, ExtractText waits on it
	textErr error
	imgErr  error
}

func (f *fakeSource) ExtractText(ctx context.Context, path string, dpi int) (string, error) {
	f.textCalls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.textErr != nil {
		return "", &ExtractionError{Op: "extract_text", Path: path, Err: f.textErr}
	}
	return "## Page 1\n\nreference\n", nil
}

func (f *fakeSource) RenderPage(_ context.Context, path string, dpi, page int) (Image, error) {
	f.coverCalls.Add(1)
	if f.imgErr != nil {
		return Image{}, &ExtractionError{Op: "render_page", Path: path, Err: f.imgErr}
	}
	return Image{MIMEType: "image/png", Data: []byte{byte(page)}, Width: dpi, Height: dpi}, nil
}

func TestCache_ComputesOnce(t *testing.T) {
	src := &fakeSource{}
	c := NewCache(src, "guide.pdf", 600, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		m, err := c.Material(ctx)
		require.NoError(t, err)
		assert.Equal(t, "## Page 1\n\nreference\n", m.Text)
		assert.Equal(t, "image/png", m.Cover.MIMEType)
		assert.Equal(t, 600, m.Cover.Width)
	}

	assert.EqualValues(t, 1, src.textCalls.Load())
	assert.EqualValues(t, 1, src.coverCalls.Load())
	assert.Equal(t, Stats{TextExtractions: 1, CoverRenders: 1}, c.Stats())
}

func TestCache_ConcurrentFirstAccessSharesExtraction(t *testing.T) {
	src := &fakeSource{gate: make(chan struct{})}
	c := NewCache(src, "guide.pdf", 600, nil)

	const callers = 16
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Text(context.Background())
		}(i)
	}

	// Let the first flight start before releasing it.
	require.Eventually(t, func() bool { return src.textCalls.Load() == 1 }, timeout, tick)
	close(src.gate)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
	assert.EqualValues(t, 1, src.textCalls.Load())
	assert.Equal(t, 1, c.Stats().TextExtractions)
}

func TestCache_FailureIsNotMemoized(t *testing.T) {
	src := &fakeSource{textErr: errors.New("corrupt xref")}
	c := NewCache(src, "guide.pdf", 600, nil)
	ctx := context.Background()

	_, err := c.Text(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrExtraction)
	var xe *ExtractionError
	require.ErrorAs(t, err, &xe)
	assert.Equal(t, "extract_text", xe.Op)
	assert.Equal(t, "guide.pdf", xe.Path)

	src.textErr = nil
	text, err := c.Text(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, text)
	assert.EqualValues(t, 2, src.textCalls.Load())
}

func TestCache_MaterialStopsAtTextFailure(t *testing.T) {
	src := &fakeSource{textErr: errors.New("unreadable")}
	c := NewCache(src, "guide.pdf", 600, nil)

	_, err := c.Material(context.Background())
	require.Error(t, err)
	assert.EqualValues(t, 0, src.coverCalls.Load())
}

func TestCache_CoverFailure(t *testing.T) {
	src := &fakeSource{imgErr: errors.New("pdftoppm missing")}
	c := NewCache(src, "guide.pdf", 600, nil)

	_, err := c.Material(context.Background())
	assert.ErrorIs(t, err, apperr.ErrExtraction)

	// Text stays cached even though the cover failed.
	_, err = c.Text(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, src.textCalls.Load())
}

func TestCache_Reset(t *testing.T) {
	src := &fakeSource{}
	c := NewCache(src, "guide.pdf", 600, nil)
	ctx := context.Background()

	_, err := c.Material(ctx)
	require.NoError(t, err)

	c.Reset()
	_, err = c.Material(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 2, src.textCalls.Load())
	assert.EqualValues(t, 2, src.coverCalls.Load())
	assert.Equal(t, Stats{TextExtractions: 2, CoverRenders: 2}, c.Stats())
}

func TestCache_ResetDiscardsInFlightResult(t *testing.T) {
	src := &fakeSource{gate: make(chan struct{})}
	c := NewCache(src, "guide.pdf", 600, nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.Text(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return src.textCalls.Load() == 1 }, timeout, tick)

	c.Reset()
	close(src.gate)
	require.NoError(t, <-done)

	// The in-flight result belonged to the previous generation.
	_, err := c.Text(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, src.textCalls.Load())
}
