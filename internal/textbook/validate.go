package textbook

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a textbook document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "textbook validation failed:\n  " + strings.Join(e.Problems, "\n  ")
}

func validate(doc document) error {
	var errs []string

	derivations := make(map[string]bool, len(doc.Derivations))
	for _, d := range doc.Derivations {
		switch {
		case d.Key == "":
			errs = append(errs, "derivation with empty key")
		case derivations[d.Key]:
			errs = append(errs, fmt.Sprintf("duplicate derivation key: %q", d.Key))
		}
		derivations[d.Key] = true
		if len(d.Steps) == 0 {
			errs = append(errs, fmt.Sprintf("derivation %q has no steps", d.Key))
		}
	}

	topics := make(map[string]bool, len(doc.Topics))
	sections := make(map[string]string)
	for _, t := range doc.Topics {
		if t.ID == "" {
			errs = append(errs, "topic with empty ID")
		}
		if topics[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		topics[t.ID] = true
		if len(t.Sections) == 0 {
			errs = append(errs, fmt.Sprintf("topic %q has no sections", t.ID))
		}

		for _, s := range t.Sections {
			if s.ID == "" {
				errs = append(errs, fmt.Sprintf("topic %q: section with empty ID", t.ID))
				continue
			}
			if owner, ok := sections[s.ID]; ok {
				errs = append(errs, fmt.Sprintf("duplicate section ID %q (topics %q and %q)", s.ID, owner, t.ID))
			} else {
				sections[s.ID] = t.ID
			}
			if strings.TrimSpace(s.Content) == "" {
				errs = append(errs, fmt.Sprintf("section %q has no content", s.ID))
			}
			for i, q := range s.Questions {
				if strings.TrimSpace(q.Text) == "" {
					errs = append(errs, fmt.Sprintf("section %q: question %d has no text", s.ID, i+1))
				}
			}
			for _, key := range s.Derivations {
				if !derivations[key] {
					errs = append(errs, fmt.Sprintf("section %q references nonexistent derivation %q", s.ID, key))
				}
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}
