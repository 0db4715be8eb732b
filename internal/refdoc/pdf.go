package refdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/image/draw"
)

// DefaultMaxImageEdge bounds the longest edge of a rendered page. A4 at
// 600 dpi is roughly 5000x7000 px, far beyond what vision models accept.
const DefaultMaxImageEdge = 2048

// PDFSource reads PDFs with github.com/ledongthuc/pdf and renders pages with
// poppler's pdftoppm.
type PDFSource struct {
	// PdftoppmPath is the renderer binary. Default: "pdftoppm" from PATH.
	PdftoppmPath string

	// MaxImageEdge caps the longest edge of rendered pages; larger renders
	// are downscaled. Zero means DefaultMaxImageEdge.
	MaxImageEdge int
}

// NewPDFSource returns a PDFSource with default settings.
func NewPDFSource() *PDFSource {
	return &PDFSource{PdftoppmPath: "pdftoppm", MaxImageEdge: DefaultMaxImageEdge}
}

// ExtractText implements Source. The dpi is irrelevant for text and ignored.
func (s *PDFSource) ExtractText(ctx context.Context, path string, _ int) (string, error) {
	fail := func(err error) (string, error) {
		return "", &ExtractionError{Op: "extract_text", Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	text, err := pdfMarkdown(data)
	if err != nil {
		return fail(err)
	}
	return text, nil
}

// pdfMarkdown extracts plain text page by page. The pdf package panics on
// some malformed inputs, so panics are turned into errors.
func pdfMarkdown(data []byte) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}

	var b strings.Builder
	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				f := p.Font(name)
				fonts[name] = &f
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		text = collapseWhitespace(text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "## Page %d\n\n%s\n\n", i, text)
	}

	if b.Len() == 0 {
		return "", errors.New("no extractable text")
	}
	return strings.TrimRight(b.String(), "\n") + "\n", nil
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}

// RenderPage implements Source.
func (s *PDFSource) RenderPage(ctx context.Context, path string, dpi, page int) (Image, error) {
	fail := func(err error) (Image, error) {
		return Image{}, &ExtractionError{Op: "render_page", Path: path, Err: err}
	}

	if page <= 0 {
		return fail(fmt.Errorf("page must be >= 1, got %d", page))
	}
	if dpi <= 0 {
		return fail(fmt.Errorf("dpi must be positive, got %d", dpi))
	}
	if _, err := os.Stat(path); err != nil {
		return fail(err)
	}

	bin := s.PdftoppmPath
	if bin == "" {
		bin = "pdftoppm"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return fail(fmt.Errorf("missing required binary %q in PATH: %w", bin, err))
	}

	outDir, err := os.MkdirTemp("", "aisurvival-render-")
	if err != nil {
		return fail(fmt.Errorf("create temp dir: %w", err))
	}
	defer os.RemoveAll(outDir)

	prefix := filepath.Join(outDir, "page")
	args := []string{
		"-r", strconv.Itoa(dpi), "-png",
		"-f", strconv.Itoa(page), "-l", strconv.Itoa(page),
		path, prefix,
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fail(fmt.Errorf("pdftoppm failed: %w; out=%s", err, strings.TrimSpace(string(out))))
	}

	// pdftoppm zero-pads the page suffix depending on the page count.
	matches, _ := filepath.Glob(prefix + "-*.png")
	if len(matches) == 0 {
		return fail(errors.New("no image produced by pdftoppm"))
	}
	raw, err := os.ReadFile(matches[0])
	if err != nil {
		return fail(err)
	}

	maxEdge := s.MaxImageEdge
	if maxEdge <= 0 {
		maxEdge = DefaultMaxImageEdge
	}
	img, err := fitPNG(raw, maxEdge)
	if err != nil {
		return fail(err)
	}
	return img, nil
}

// fitPNG decodes a PNG and, if its longest edge exceeds maxEdge, rescales it
// with Catmull-Rom so the longest edge equals maxEdge. The result is always
// PNG-encoded.
func fitPNG(raw []byte, maxEdge int) (Image, error) {
	src, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return Image{}, fmt.Errorf("decode png: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := max(w, h)
	if longest <= maxEdge {
		return Image{MIMEType: "image/png", Data: raw, Width: w, Height: h}, nil
	}

	scale := float64(maxEdge) / float64(longest)
	nw := max(1, int(float64(w)*scale+0.5))
	nh := max(1, int(float64(h)*scale+0.5))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return Image{}, fmt.Errorf("encode png: %w", err)
	}
	return Image{MIMEType: "image/png", Data: buf.Bytes(), Width: nw, Height: nh}, nil
}
