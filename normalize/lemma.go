package normalize

import (
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// GolemLemmatizer is a dictionary lemmatizer backed by the golem English language pack.
type GolemLemmatizer struct {
	lemmatizer *golem.Lemmatizer
}

// NewEnglishLemmatizer loads the embedded English dictionary. Loading takes a few hundred
// milliseconds, so build it once per process and share it.
func NewEnglishLemmatizer() (*GolemLemmatizer, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemma dictionary: %w", err)
	}
	return &GolemLemmatizer{lemmatizer: l}, nil
}

func (g *GolemLemmatizer) Lemma(token string) string {
	return g.lemmatizer.Lemma(token)
}
