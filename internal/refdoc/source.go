// Package refdoc loads the reference document the diagnosis is grounded in:
// its text for the prompts and its cover page as an image for the
// multimodal narrative request.
package refdoc

import (
	"context"
	"fmt"

	"github.com/abhisek/aisurvival/internal/apperr"
)

// Image is a rendered page.
type Image struct {
	MIMEType string
	Data     []byte
	Width    int
	Height   int
}

// Material is everything the pipeline needs from the reference document.
type Material struct {
	Text  string
	Cover Image
}

// Source reads a document from disk.
type Source interface {
	// ExtractText returns the document text as markdown, one "## Page N"
	// section per page.
	ExtractText(ctx context.Context, path string, dpi int) (string, error)

	// RenderPage rasterizes one 1-based page at dpi.
	RenderPage(ctx context.Context, path string, dpi, page int) (Image, error)
}

// ExtractionError reports a failure to read or render the reference document.
type ExtractionError struct {
	Op   string // "extract_text" or "render_page"
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error        { return e.Err }
func (e *ExtractionError) Is(target error) bool { return target == apperr.ErrExtraction }
