// Package markdown renders the small Markdown subset used by textbook
// sections into styled terminal lines.
//
// Supported: "# " and "## " headings, "> " callout blocks, "- " list
// items, 4-space indented equation lines, **bold** spans and paragraphs
// separated by blank lines. Anything else is treated as paragraph text.
package markdown

import (
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/physiz/internal/ui/theme"
)

var boldSpan = regexp.MustCompile(`\*\*(.+?)\*\*`)

// Render returns src as styled lines wrapped to width.
func Render(src string, width int) []string {
	width = max(width, 20)
	r := &renderer{width: width}

	for _, line := range strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n") {
		r.line(line)
	}
	r.flush()

	// No trailing blank lines.
	for len(r.out) > 0 && r.out[len(r.out)-1] == "" {
		r.out = r.out[:len(r.out)-1]
	}
	return r.out
}

type blockKind int

const (
	blockNone blockKind = iota
	blockParagraph
	blockCallout
	blockEquation
)

type renderer struct {
	width int
	out   []string

	kind  blockKind
	lines []string
}

func (r *renderer) line(line string) {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		r.flush()
	case strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t"):
		r.begin(blockEquation)
		r.lines = append(r.lines, trimmed)
	case strings.HasPrefix(trimmed, ">"):
		r.begin(blockCallout)
		r.lines = append(r.lines, strings.TrimSpace(strings.TrimPrefix(trimmed, ">")))
	case strings.HasPrefix(trimmed, "## "):
		r.flush()
		r.emit(theme.Heading.Render(Inline(strings.TrimPrefix(trimmed, "## "))))
		r.blank()
	case strings.HasPrefix(trimmed, "# "):
		r.flush()
		title := strings.TrimPrefix(trimmed, "# ")
		r.emit(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(strings.ToUpper(Inline(title))))
		r.emit(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(ansi.StringWidth(title), r.width))))
		r.blank()
	case strings.HasPrefix(trimmed, "- "):
		r.flush()
		r.emitWrapped("  • ", "    ", Inline(strings.TrimPrefix(trimmed, "- ")), r.width)
	default:
		r.begin(blockParagraph)
		r.lines = append(r.lines, trimmed)
	}
}

// begin starts a block of kind, flushing any block of another kind.
func (r *renderer) begin(kind blockKind) {
	if r.kind != kind {
		r.flush()
		r.kind = kind
	}
}

func (r *renderer) flush() {
	lines := r.lines
	kind := r.kind
	r.kind, r.lines = blockNone, nil

	switch kind {
	case blockParagraph:
		r.emitWrapped("", "", Inline(strings.Join(lines, " ")), r.width)
		r.blank()
	case blockEquation:
		for _, l := range lines {
			r.emit("    " + theme.Equation.Render(l))
		}
		r.blank()
	case blockCallout:
		r.callout(lines)
		r.blank()
	}
}

func (r *renderer) callout(lines []string) {
	// Rows are joined source lines. A list item or a standalone **title**
	// line always gets a row of its own.
	var rows []string
	joinable := false
	for _, l := range lines {
		switch {
		case l == "":
			rows = append(rows, "")
			joinable = false
		case strings.HasPrefix(l, "- "):
			rows = append(rows, "• "+Inline(strings.TrimPrefix(l, "- ")))
			joinable = false
		case isTitle(l):
			rows = append(rows, Inline(l))
			joinable = false
		case joinable:
			rows[len(rows)-1] += " " + Inline(l)
		default:
			rows = append(rows, Inline(l))
			joinable = true
		}
	}

	for i, row := range rows {
		rows[i] = ansi.Wordwrap(row, r.width-2, "")
	}
	block := theme.Callout.Render(strings.Join(rows, "\n"))
	r.out = append(r.out, strings.Split(block, "\n")...)
}

func isTitle(l string) bool {
	return len(l) > 4 && strings.HasPrefix(l, "**") && strings.HasSuffix(l, "**") &&
		!strings.Contains(l[2:len(l)-2], "**")
}

func (r *renderer) emitWrapped(first, rest, text string, width int) {
	wrapped := ansi.Wordwrap(text, width-ansi.StringWidth(first), "")
	for i, l := range strings.Split(wrapped, "\n") {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		r.emit(prefix + l)
	}
}

func (r *renderer) emit(s string) {
	r.out = append(r.out, s)
}

func (r *renderer) blank() {
	if len(r.out) > 0 && r.out[len(r.out)-1] != "" {
		r.out = append(r.out, "")
	}
}

// Inline applies **bold** spans.
func Inline(s string) string {
	return boldSpan.ReplaceAllStringFunc(s, func(m string) string {
		inner := boldSpan.FindStringSubmatch(m)[1]
		return lipgloss.NewStyle().Bold(true).Foreground(theme.ArcadeYellow).Render(inner)
	})
}

// Plain strips the Markdown markers, for output without styling.
func Plain(src string) string {
	var out []string
	for _, line := range Render(src, 78) {
		out = append(out, ansi.Strip(line))
	}
	return strings.Join(out, "\n")
}
