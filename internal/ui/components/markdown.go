package components

import (
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
)

// Glamour style names accepted besides a path to a JSON style file.
const (
	StyleAuto  = "auto"
	StylePlain = "notty"
)

// Markdown renders model-written markdown, rebuilding the renderer only
// when the wrap width changes.
type Markdown struct {
	Style string

	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdown returns a renderer for style. Empty means plain output.
// Resolve StyleAuto with ResolveMarkdownStyle first.
func NewMarkdown(style string) *Markdown {
	if style == "" {
		style = StylePlain
	}
	return &Markdown{Style: style}
}

// Render formats src wrapped to width. An unknown style falls back to
// plain wrapped text.
func (m *Markdown) Render(src string, width int) string {
	width = max(width, 20)
	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStylePath(m.Style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return plainWrap(src, width)
		}
		m.renderer, m.width = r, width
	}

	out, err := m.renderer.Render(src)
	if err != nil {
		return plainWrap(src, width)
	}
	return strings.Trim(out, "\n")
}

func plainWrap(src string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(src)
}

// ResolveMarkdownStyle maps StyleAuto to a concrete style: GLAMOUR_STYLE
// when set, plain when out is not a terminal, otherwise dark or light by
// the terminal background. The background query reads in, so call this
// before a tea program owns the terminal.
func ResolveMarkdownStyle(style string, in, out *os.File) string {
	if style != StyleAuto {
		return style
	}
	if env := os.Getenv("GLAMOUR_STYLE"); env != "" {
		return env
	}
	if !term.IsTerminal(out.Fd()) {
		return StylePlain
	}
	if lipgloss.HasDarkBackground(in, out) {
		return "dark"
	}
	return "light"
}
