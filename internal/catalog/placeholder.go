package catalog

import (
	"regexp"

	"github.com/abhisek/physiz/internal/formula"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Placeholders returns the distinct placeholder names in text, in order
// of first appearance.
func Placeholders(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// HasPlaceholders reports whether any {name} syntax remains in text.
func HasPlaceholders(text string) bool {
	return placeholderRe.MatchString(text)
}

// Substitute replaces every {name} with the display form of its value.
// Names without a binding are left as they are.
func Substitute(text string, vars formula.Vars) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := vars[name]; ok {
			return v.Display()
		}
		return m
	})
}
