package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aisurvival/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20
)

// Brand is shown at the left of the header.
const Brand = "AI Survival"

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal cannot fit a question screen.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Window is %dx%d.\nResize to at least %dx%d to continue.",
		width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Hint.Render(msg))
}

var (
	brandStyle  = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(theme.Accent)
	barStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	keyStyle    = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle   = lipgloss.NewStyle().Foreground(theme.TextDim)
)

// RenderHeader renders "Brand · title" on the left and status, e.g. "2/4
// answered", flush right.
func RenderHeader(title, status string, width int) string {
	left := brandStyle.Render(" " + Brand)
	if title != "" {
		left += descStyle.Render(" · ") + theme.Body.Render(title)
	}
	right := statusStyle.Render(status + " ")

	inner := max(width-2, 0)
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return barStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// RenderFooter renders the key hints of the active screen.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return barStyle.Width(width).Render(" " + strings.Join(parts, descStyle.Render("  ·  ")))
}

// RenderFrame stacks header, content and footer; content is clipped or
// padded so the frame is exactly height lines.
func RenderFrame(header, content, footer string, width, height int) string {
	h := ContentHeight(header, footer, height)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// ContentHeight returns the lines left for content between header and footer.
func ContentHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}
