// Package style is the pure decision layer mapping (color-enabled, role) to
// terminal styling. The renderer asks it for styled text; toggling color off
// never changes what text is produced, only whether escape sequences wrap it.
package style

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/quodlibetor/jsonlogprint/internal/config"
)

// Basic ANSI palette indices.
const (
	red    = lipgloss.Color("1")
	green  = lipgloss.Color("2")
	yellow = lipgloss.Color("3")
	blue   = lipgloss.Color("4")
	cyan   = lipgloss.Color("6")
)

// Enabled resolves a ColorMode to a concrete yes/no once per process.
// Auto enables color when stdout is a terminal, or when the conventional CI
// environment variable is set (CI log viewers render ANSI but are not TTYs).
func Enabled(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return true
	}
	_, ci := os.LookupEnv("CI")
	return ci
}

// Styler renders text for the roles the output layer needs: timestamps,
// severity levels, and depth-cycled structural text. With color disabled
// every method returns its input unchanged.
type Styler struct {
	colorize  bool
	timestamp lipgloss.Style
	depth     [6]lipgloss.Style
	levels    map[string]lipgloss.Style
}

// New returns a Styler. The styles are pinned to the 16-color ANSI profile
// rather than detected from the output, so --color=always emits escape
// sequences even when piped.
func New(colorize bool) *Styler {
	s := &Styler{colorize: colorize}
	if !colorize {
		return s
	}

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)

	s.timestamp = r.NewStyle().Faint(true)
	s.depth = [6]lipgloss.Style{
		r.NewStyle().Foreground(blue),
		r.NewStyle().Foreground(cyan),
		r.NewStyle().Foreground(green),
		r.NewStyle().Foreground(blue).Faint(true),
		r.NewStyle().Foreground(cyan).Faint(true),
		r.NewStyle().Foreground(green).Faint(true),
	}
	s.levels = map[string]lipgloss.Style{
		"crit":     r.NewStyle().Foreground(red).Bold(true),
		"critical": r.NewStyle().Foreground(red).Bold(true),
		"error":    r.NewStyle().Foreground(red),
		"warn":     r.NewStyle().Foreground(yellow),
		"warning":  r.NewStyle().Foreground(yellow),
		"info":     r.NewStyle().Foreground(cyan),
		"debug":    r.NewStyle().Foreground(blue).Faint(true),
		"trace":    r.NewStyle().Faint(true),
	}
	return s
}

// Timestamp dims the rendered timestamp.
func (s *Styler) Timestamp(text string) string {
	if !s.colorize {
		return text
	}
	return s.timestamp.Render(text)
}

// Level colorizes a severity value by its (case-insensitive) name.
// Unrecognized levels pass through unstyled.
func (s *Styler) Level(text string) string {
	if !s.colorize {
		return text
	}
	st, ok := s.levels[strings.ToLower(text)]
	if !ok {
		return text
	}
	return st.Render(text)
}

// Depth styles structural text (keys, braces, brackets) by nesting depth,
// cycling through six styles.
func (s *Styler) Depth(text string, depth int) string {
	if !s.colorize {
		return text
	}
	return s.depth[depth%6].Render(text)
}
