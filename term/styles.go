// Package term implements schemaprompt.InputHandler for terminals: Handler runs
// an interactive widget per prompt, LineHandler reads plain lines and suits
// pipes and dumb terminals.
package term

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/reoring/schemaprompt"
)

// DefaultIndentWidth is the number of spaces per indent level.
const DefaultIndentWidth = 2

// wrapWidth bounds instruction text.
const wrapWidth = 80

type styles struct {
	err     lipgloss.Style
	trace   lipgloss.Style
	hint    lipgloss.Style
	prompt  lipgloss.Style
	invalid lipgloss.Style
}

func newStyles(out io.Writer, plain bool) styles {
	r := lipgloss.NewRenderer(out)
	if plain {
		return styles{
			err:     r.NewStyle(),
			trace:   r.NewStyle(),
			hint:    r.NewStyle(),
			prompt:  r.NewStyle(),
			invalid: r.NewStyle(),
		}
	}
	return styles{
		err:     r.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		trace:   r.NewStyle().Faint(true),
		hint:    r.NewStyle().Foreground(lipgloss.Color("240")),
		prompt:  r.NewStyle().Bold(true),
		invalid: r.NewStyle().Foreground(lipgloss.Color("#ff0000")).Italic(true),
	}
}

func (s styles) color(c schemaprompt.Color) lipgloss.Style {
	switch c {
	case schemaprompt.ColorError:
		return s.err
	case schemaprompt.ColorTrace:
		return s.trace
	}
	return lipgloss.NewStyle()
}

// indentLines prefixes every line of text with level indents.
func indentLines(text string, level, width int) string {
	if level <= 0 {
		return text
	}
	pad := strings.Repeat(" ", level*width)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}

// wrapInstructions word-wraps text with the first line at level and the
// continuation lines one level deeper.
func wrapInstructions(text string, level, width int) string {
	first := strings.Repeat(" ", level*width)
	rest := strings.Repeat(" ", (level+1)*width)
	limit := wrapWidth - len(rest)
	if limit < 20 {
		limit = 20
	}
	wrapped := wordwrap.String(strings.Join(strings.Fields(text), " "), limit)
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		if i == 0 {
			lines[i] = first + l
			continue
		}
		lines[i] = rest + l
	}
	return strings.Join(lines, "\n")
}

// complete expands text to the single candidate it is a case-insensitive
// prefix of. Exact matches and ambiguous prefixes are returned unchanged.
func complete(text string, candidates []string) string {
	if text == "" || len(candidates) == 0 {
		return text
	}
	lower := strings.ToLower(text)
	match := ""
	for _, c := range candidates {
		lc := strings.ToLower(c)
		if lc == lower {
			return c
		}
		if strings.HasPrefix(lc, lower) {
			if match != "" {
				return text
			}
			match = c
		}
	}
	if match == "" {
		return text
	}
	return match
}
