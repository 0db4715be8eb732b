package refdoc

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/aisurvival/internal/logging"
)

// CoverPage is the page rendered as the cover image.
const CoverPage = 1

const (
	keyText  = "text"
	keyCover = "cover"
)

// Stats counts how many times the underlying Source actually ran.
type Stats struct {
	TextExtractions int
	CoverRenders    int
}

// Cache memoizes the artifacts of one reference document for a session.
// Each artifact is produced at most once; concurrent first callers share a
// single extraction. Failures are returned to every waiting caller and are
// not stored, so the next call tries again.
type Cache struct {
	source Source
	path   string
	dpi    int
	log    *logging.Logger

	group singleflight.Group

	mu    sync.Mutex
	gen   uint64 // bumped by Reset; stale in-flight results are discarded
	text  *string
	cover *Image
	stats Stats
}

// NewCache returns a Cache reading path at dpi through source.
func NewCache(source Source, path string, dpi int, log *logging.Logger) *Cache {
	if log == nil {
		log = logging.Nop()
	}
	return &Cache{source: source, path: path, dpi: dpi, log: log}
}

// Path returns the document path the cache reads.
func (c *Cache) Path() string { return c.path }

// Text returns the document text, extracting it on first use.
func (c *Cache) Text(ctx context.Context) (string, error) {
	if t, ok := c.memoText(); ok {
		return t, nil
	}
	gen := c.generation()

	v, err, shared := c.group.Do(keyText, func() (any, error) {
		// A flight that finished between the memo check and Do already
		// stored the result.
		if t, ok := c.memoText(); ok {
			return t, nil
		}
		c.count(func(s *Stats) { s.TextExtractions++ })
		c.log.Debug("extracting reference text", "path", c.path)

		text, err := c.source.ExtractText(ctx, c.path, c.dpi)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.text = &text
		}
		c.mu.Unlock()
		return text, nil
	})
	if err != nil {
		c.log.Warn("reference text extraction failed", "path", c.path, "error", err)
		return "", err
	}
	if shared {
		c.log.Debug("reference text shared with concurrent caller", "path", c.path)
	}
	return v.(string), nil
}

// CoverImage returns the first page rendered as PNG, rendering it on first use.
func (c *Cache) CoverImage(ctx context.Context) (Image, error) {
	if img, ok := c.memoCover(); ok {
		return img, nil
	}
	gen := c.generation()

	v, err, _ := c.group.Do(keyCover, func() (any, error) {
		if img, ok := c.memoCover(); ok {
			return img, nil
		}
		c.count(func(s *Stats) { s.CoverRenders++ })
		c.log.Debug("rendering reference cover", "path", c.path, "dpi", c.dpi)

		img, err := c.source.RenderPage(ctx, c.path, c.dpi, CoverPage)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if c.gen == gen {
			c.cover = &img
		}
		c.mu.Unlock()
		return img, nil
	})
	if err != nil {
		c.log.Warn("reference cover render failed", "path", c.path, "error", err)
		return Image{}, err
	}
	return v.(Image), nil
}

// Material returns text and cover together. Text is loaded first; the cover
// is not attempted if text extraction fails.
func (c *Cache) Material(ctx context.Context) (Material, error) {
	text, err := c.Text(ctx)
	if err != nil {
		return Material{}, err
	}
	cover, err := c.CoverImage(ctx)
	if err != nil {
		return Material{}, err
	}
	return Material{Text: text, Cover: cover}, nil
}

// Reset drops memoized artifacts. Extractions already in flight finish but
// their results are not kept.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.text = nil
	c.cover = nil
	c.group.Forget(keyText)
	c.group.Forget(keyCover)
}

// Stats returns the number of extractions that actually executed.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cache) memoText() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.text == nil {
		return "", false
	}
	return *c.text, true
}

func (c *Cache) memoCover() (Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cover == nil {
		return Image{}, false
	}
	return *c.cover, true
}

func (c *Cache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

func (c *Cache) count(f func(*Stats)) {
	c.mu.Lock()
	f(&c.stats)
	c.mu.Unlock()
}
