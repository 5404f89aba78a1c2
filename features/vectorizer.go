// Package features turns a cleaned comment corpus into a small table of label-informative
// numeric columns: TF-IDF vectorization, chi-square selection, scaling and aggregation by
// transaction id. Every stage consumes its whole input and returns a new value.
package features

import (
	"math"
	"sort"
	"strings"

	"github.com/blugelabs/bluge/analysis"
	"github.com/blugelabs/bluge/analysis/lang/en"
	"github.com/blugelabs/bluge/analysis/token"
	"github.com/blugelabs/bluge/analysis/tokenizer"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/floats"
)

// Vocabulary maps terms (n-grams joined by a single space) to matrix columns.
// Terms are stored in lexicographic order, which is also the column order.
type Vocabulary struct {
	Terms   []string
	DocFreq []int
	index   map[string]int
}

func newVocabulary(terms []string, df map[string]int) Vocabulary {
	v := Vocabulary{
		Terms:   terms,
		DocFreq: make([]int, len(terms)),
		index:   make(map[string]int, len(terms)),
	}
	for i, t := range terms {
		v.index[t] = i
		v.DocFreq[i] = df[t]
	}
	return v
}

func (v Vocabulary) Len() int {
	return len(v.Terms)
}

// Index returns the column of a term.
func (v Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Matrix is the documents x terms TF-IDF matrix. A zero-width or zero-height matrix has no
// backing storage; every accessor handles that case.
type Matrix struct {
	rows, cols int
	csr        *sparse.CSR
}

func (m Matrix) Dims() (int, int) {
	return m.rows, m.cols
}

func (m Matrix) At(i, j int) float64 {
	if m.csr == nil {
		return 0
	}
	return m.csr.At(i, j)
}

// DoNonZero calls fn for every non-zero cell in row-major order.
func (m Matrix) DoNonZero(fn func(i, j int, v float64)) {
	if m.csr == nil {
		return
	}
	m.csr.DoNonZero(fn)
}

// Columns copies the given columns into dense rows, preserving the column order given.
func (m Matrix) Columns(cols []int) [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, len(cols))
	}
	if len(cols) == 0 {
		return out
	}
	position := make(map[int]int, len(cols))
	for p, c := range cols {
		position[c] = p
	}
	m.DoNonZero(func(i, j int, v float64) {
		if p, ok := position[j]; ok {
			out[i][p] = v
		}
	})
	return out
}

// Vectorizer computes smoothed, L2-normalized TF-IDF weights over word n-grams.
type Vectorizer struct {
	maxFeatures int
	minDF       int
	maxDF       float64
	ngramMax    int
	analyzer    *analysis.Analyzer
}

// NewVectorizer builds a vectorizer. Terms must appear in at least minDF documents and in
// at most maxDF (a fraction) of them; the maxFeatures most frequent survivors are kept.
func NewVectorizer(maxFeatures, minDF int, maxDF float64, ngramMax int) *Vectorizer {
	if ngramMax < 1 {
		ngramMax = 1
	}
	return &Vectorizer{
		maxFeatures: maxFeatures,
		minDF:       minDF,
		maxDF:       maxDF,
		ngramMax:    ngramMax,
		analyzer: &analysis.Analyzer{
			Tokenizer: tokenizer.NewUnicodeTokenizer(),
			TokenFilters: []analysis.TokenFilter{
				token.NewLengthFilter(2, 0),
				en.StopWordsFilter(),
			},
		},
	}
}

// FitTransform learns the vocabulary of the corpus and returns its TF-IDF matrix.
// Rows are aligned with the corpus. An empty corpus, or one where no term satisfies the
// document-frequency bounds, yields an empty vocabulary and a zero-width matrix.
func (v *Vectorizer) FitTransform(corpus []string) (Vocabulary, Matrix) {
	n := len(corpus)
	counts := make([]map[string]int, n)
	df := make(map[string]int)
	tf := make(map[string]int)
	for i, doc := range corpus {
		counts[i] = make(map[string]int)
		for _, gram := range v.ngrams(v.tokens(doc)) {
			counts[i][gram]++
			tf[gram]++
		}
		for gram := range counts[i] {
			df[gram]++
		}
	}

	terms := v.limit(df, tf, n)
	vocab := newVocabulary(terms, df)
	if n == 0 || len(terms) == 0 {
		return vocab, Matrix{rows: n, cols: len(terms)}
	}

	idf := make([]float64, len(terms))
	for j, t := range terms {
		idf[j] = math.Log(float64(1+n)/float64(1+df[t])) + 1
	}

	dok := sparse.NewDOK(n, len(terms))
	for i := range corpus {
		cols := make([]int, 0, len(counts[i]))
		for gram := range counts[i] {
			if j, ok := vocab.Index(gram); ok {
				cols = append(cols, j)
			}
		}
		if len(cols) == 0 {
			continue
		}
		sort.Ints(cols)
		weights := make([]float64, len(cols))
		for k, j := range cols {
			weights[k] = float64(counts[i][terms[j]]) * idf[j]
		}
		norm := floats.Norm(weights, 2)
		for k, j := range cols {
			dok.Set(i, j, weights[k]/norm)
		}
	}
	return vocab, Matrix{rows: n, cols: len(terms), csr: dok.ToCSR()}
}

// limit applies the document-frequency bounds and the vocabulary cap. Ties on corpus
// frequency are broken lexicographically; the result is sorted lexicographically.
func (v *Vectorizer) limit(df, tf map[string]int, n int) []string {
	maxDocCount := v.maxDF * float64(n)
	candidates := make([]string, 0, len(df))
	for term, count := range df {
		if count < v.minDF || float64(count) > maxDocCount {
			continue
		}
		candidates = append(candidates, term)
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if tf[a] != tf[b] {
			return tf[a] > tf[b]
		}
		return a < b
	})
	if v.maxFeatures > 0 && len(candidates) > v.maxFeatures {
		candidates = candidates[:v.maxFeatures]
	}
	sort.Strings(candidates)
	return candidates
}

// tokens splits a cleaned document into words of two characters or more, stop words removed.
func (v *Vectorizer) tokens(doc string) []string {
	if doc == "" {
		return nil
	}
	stream := v.analyzer.Analyze([]byte(doc))
	out := make([]string, 0, len(stream))
	for _, tok := range stream {
		out = append(out, string(tok.Term))
	}
	return out
}

// ngrams expands a token sequence into every contiguous n-gram up to ngramMax.
func (v *Vectorizer) ngrams(tokens []string) []string {
	out := make([]string, 0, len(tokens)*v.ngramMax)
	for size := 1; size <= v.ngramMax; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+size], " "))
		}
	}
	return out
}
