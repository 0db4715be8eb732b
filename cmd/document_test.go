package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/aisurvival/internal/apperr"
	"github.com/abhisek/aisurvival/internal/refdoc"
	"github.com/abhisek/aisurvival/internal/ui/components"
)

type stubSource struct {
	text    string
	textErr error
	renders int
}

func (s *stubSource) ExtractText(_ context.Context, path string, _ int) (string, error) {
	if s.textErr != nil {
		return "", &refdoc.ExtractionError{Op: "extract_text", Path: path, Err: s.textErr}
	}
	return s.text, nil
}

func (s *stubSource) RenderPage(_ context.Context, _ string, dpi, page int) (refdoc.Image, error) {
	s.renders++
	return refdoc.Image{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G', byte(page)}, Width: dpi, Height: dpi}, nil
}

func TestPreviewDocumentPrintsText(t *testing.T) {
	src := &stubSource{text: "## Page 1\n\nAIサバイバル診断 reference guide\n"}
	cache := refdoc.NewCache(src, "guide.pdf", 600, nil)

	var out bytes.Buffer
	if err := previewDocument(context.Background(), &out, cache, components.NewMarkdown(components.StylePlain), ""); err != nil {
		t.Fatalf("previewDocument: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "guide.pdf") {
		t.Fatalf("expected the document path in the header, got:\n%s", got)
	}
	if !strings.Contains(got, "reference guide") {
		t.Fatalf("expected the extracted text, got:\n%s", got)
	}
	if src.renders != 0 {
		t.Fatalf("cover must not be rendered without --cover, got %d renders", src.renders)
	}
}

func TestPreviewDocumentWritesCover(t *testing.T) {
	src := &stubSource{text: "## Page 1\n\nreference\n"}
	cache := refdoc.NewCache(src, "guide.pdf", 300, nil)
	coverPath := filepath.Join(t.TempDir(), "cover.png")

	var out bytes.Buffer
	if err := previewDocument(context.Background(), &out, cache, components.NewMarkdown(components.StylePlain), coverPath); err != nil {
		t.Fatalf("previewDocument: %v", err)
	}

	data, err := os.ReadFile(coverPath)
	if err != nil {
		t.Fatalf("read cover: %v", err)
	}
	if !bytes.Equal(data, []byte{0x89, 'P', 'N', 'G', byte(refdoc.CoverPage)}) {
		t.Fatalf("unexpected cover bytes %v", data)
	}
	if !strings.Contains(out.String(), "300x300 image/png") {
		t.Fatalf("expected cover dimensions in output, got:\n%s", out.String())
	}
}

func TestPreviewDocumentExtractionFailure(t *testing.T) {
	src := &stubSource{textErr: errors.New("pdf: malformed xref")}
	cache := refdoc.NewCache(src, "broken.pdf", 600, nil)

	var out bytes.Buffer
	err := previewDocument(context.Background(), &out, cache, components.NewMarkdown(components.StylePlain), "")
	if !errors.Is(err, apperr.ErrExtraction) {
		t.Fatalf("expected an extraction error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be printed on failure, got:\n%s", out.String())
	}
}
