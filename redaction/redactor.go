package redaction

import (
	"polarity-lab/normalize"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Redactor removes configured terms from normalized comments before vectorization.
// Terms that restate the label (e.g. "approved", "rejected") would otherwise dominate
// the chi-square ranking.
type Redactor struct {
	matcher *goahocorasick.Machine
}

// NewRedactor initializes the Aho-Corasick automaton with the normalized form of every term.
// Terms that normalize to an empty string are ignored.
func NewRedactor(terms []string) (Redactor, error) {
	seen := make(map[string]struct{}, len(terms))
	patterns := make([][]rune, 0, len(terms))
	for _, term := range terms {
		cleaned := normalize.Clean(term)
		if cleaned == "" {
			continue
		}
		if _, ok := seen[cleaned]; ok {
			continue
		}
		seen[cleaned] = struct{}{}
		patterns = append(patterns, []rune(cleaned))
	}
	if len(patterns) == 0 {
		return Redactor{}, nil
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Redactor{}, err
	}
	return Redactor{matcher: m}, nil
}

// Redact drops whole-word occurrences of the terms from an already normalized comment and
// returns the removed terms in order of appearance. The output stays normalized.
func (r Redactor) Redact(cleaned string) (string, []string) {
	if r.matcher == nil || cleaned == "" {
		return cleaned, nil
	}

	runes := []rune(cleaned)
	spans := r.matcher.MultiPatternSearch(runes, false)
	if len(spans) == 0 {
		return cleaned, nil
	}

	drop := make([]bool, len(runes))
	var removed []string
	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(runes) || !isWordBoundary(runes, start, end) {
			continue
		}
		for i := start; i < end; i++ {
			drop[i] = true
		}
		removed = append(removed, string(span.Word))
	}
	if len(removed) == 0 {
		return cleaned, nil
	}

	kept := make([]rune, 0, len(runes))
	for i, c := range runes {
		if drop[i] {
			kept = append(kept, ' ')
			continue
		}
		kept = append(kept, c)
	}
	return strings.Join(strings.Fields(string(kept)), " "), removed
}

// isWordBoundary reports whether [start, end) is delimited by spaces or the text edges.
func isWordBoundary(runes []rune, start, end int) bool {
	if start > 0 && runes[start-1] != ' ' {
		return false
	}
	if end < len(runes) && runes[end] != ' ' {
		return false
	}
	return true
}
