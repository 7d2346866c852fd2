// Package textvec implements a TF-IDF text vectorizer: fit once over a corpus,
// then project arbitrary text into the fitted term space.
package textvec

import (
	"errors"
	"math"
	"slices"
)

// ErrEmptyVocabulary is returned by Fit when no document yields a token.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words or no words at all")

// Model is a fitted TF-IDF model. It is immutable and safe for concurrent use.
type Model struct {
	columns map[string]int
	terms   []string
	idf     []float64
}

// Fit builds the term vocabulary and smoothed inverse document frequencies:
// idf(t) = ln((1+n) / (1+df(t))) + 1.
func Fit(docs []string) (*Model, error) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	n := float64(len(docs))
	m := &Model{
		columns: make(map[string]int, len(terms)),
		terms:   terms,
		idf:     make([]float64, len(terms)),
	}
	for i, term := range terms {
		m.columns[term] = i
		m.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	return m, nil
}

// Transform projects text into the fitted term space as an L2-normalized
// TF-IDF vector. Terms outside the vocabulary are ignored.
func (m *Model) Transform(text string) Vector {
	counts := make(map[int]int)
	for _, tok := range Tokenize(text) {
		if col, ok := m.columns[tok]; ok {
			counts[col]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	indices := make([]int, 0, len(counts))
	for col := range counts {
		indices = append(indices, col)
	}
	slices.Sort(indices)

	values := make([]float64, len(indices))
	for i, col := range indices {
		values[i] = float64(counts[col]) * m.idf[col]
	}

	return Vector{indices: indices, values: values}.normalized()
}

// Similarity returns the cosine similarity of two texts in the fitted space.
func (m *Model) Similarity(a, b string) float64 {
	return Cosine(m.Transform(a), m.Transform(b))
}

// Size returns the number of terms in the fitted vocabulary.
func (m *Model) Size() int {
	return len(m.terms)
}

// Column returns the column index of term and whether it is in the vocabulary.
func (m *Model) Column(term string) (int, bool) {
	col, ok := m.columns[term]
	return col, ok
}

// IDF returns the inverse document frequency of term, or zero when unknown.
func (m *Model) IDF(term string) float64 {
	col, ok := m.columns[term]
	if !ok {
		return 0
	}
	return m.idf[col]
}

// Terms returns a copy of the fitted vocabulary in column order.
func (m *Model) Terms() []string {
	return slices.Clone(m.terms)
}
