// Package normalize turns raw customer comments into canonical lowercase ASCII text.
// It is deterministic and keeps no state between calls.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Scope selects how much of a cleaned comment is handed to the lemmatizer at once.
type Scope string

const (
	// ScopeDocument lemmatizes the whole cleaned comment as a single token.
	// Multi-word comments are never dictionary entries and pass through unchanged.
	ScopeDocument Scope = "document"
	// ScopeWord lemmatizes every word independently.
	ScopeWord Scope = "word"
)

// maxLemmaPasses bounds the search for a lemmatization fixed point.
const maxLemmaPasses = 4

// Lemmatizer reduces a token to its dictionary base form.
// Unknown tokens must be returned unchanged.
type Lemmatizer interface {
	Lemma(token string) string
}

type Normalizer struct {
	lemmatizer Lemmatizer
	scope      Scope
}

// NewNormalizer returns a Normalizer. A nil lemmatizer disables step 5.
func NewNormalizer(lemmatizer Lemmatizer, scope Scope) Normalizer {
	if scope != ScopeWord {
		scope = ScopeDocument
	}
	return Normalizer{lemmatizer: lemmatizer, scope: scope}
}

// Normalize cleans one comment: NFKC composition, removal of everything that is not an
// ASCII letter, digit or whitespace, whitespace collapsing, lowercasing, lemmatization.
// It never fails; the worst case is an empty string.
func (n Normalizer) Normalize(text string) string {
	cleaned := Clean(text)
	if n.lemmatizer == nil || cleaned == "" {
		return cleaned
	}
	return n.lemmatize(cleaned)
}

// NormalizeAll normalizes a corpus. The output is positionally aligned with the input.
func (n Normalizer) NormalizeAll(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = n.Normalize(t)
	}
	return out
}

// Clean applies the lemmatizer-free part of Normalize.
func Clean(text string) string {
	composed := norm.NFKC.String(text)
	stripped := strings.Map(func(r rune) rune {
		if isASCIIAlnum(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, composed)
	return strings.ToLower(strings.Join(strings.Fields(stripped), " "))
}

// lemmatize iterates until the lemmatizer is stable so that Normalize stays idempotent
// even when a lemma is itself an inflected form.
func (n Normalizer) lemmatize(cleaned string) string {
	current := cleaned
	for i := 0; i < maxLemmaPasses; i++ {
		next := Clean(n.lemmatizeOnce(current))
		if next == "" || next == current {
			return current
		}
		current = next
	}
	return current
}

func (n Normalizer) lemmatizeOnce(text string) string {
	if n.scope == ScopeDocument {
		return n.lemmatizer.Lemma(text)
	}
	words := strings.Split(text, " ")
	for i, w := range words {
		words[i] = n.lemmatizer.Lemma(w)
	}
	return strings.Join(words, " ")
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
