// Package skills detects known skills in free text: vocabulary harvesting,
// alias resolution, text normalization and whole-word phrase matching.
package skills

import (
	"slices"
	"strings"
	"unicode/utf8"
)

type pattern struct {
	canonical string
	forms     []string
}

// Extractor finds vocabulary skills in text. Patterns are prepared once, so a
// call costs one scan of the normalized text per canonical skill.
type Extractor struct {
	patterns []pattern
}

// NewExtractor prepares one pattern per canonical skill reachable from the
// vocabulary. A pattern matches the normalized canonical form or any alias that
// resolves to it. Forms that normalize to nothing are skipped.
func NewExtractor(vocab *Vocabulary, aliases *Aliases) *Extractor {
	seen := make(map[string]struct{})
	patterns := make([]pattern, 0, vocab.Len())

	for _, skill := range vocab.Skills() {
		canonical := aliases.Resolve(skill)
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}

		forms := make([]string, 0, 1)
		for _, form := range append([]string{canonical}, aliases.Variants(canonical)...) {
			normalized := NormalizeText(form)
			if normalized == "" || slices.Contains(forms, normalized) {
				continue
			}
			forms = append(forms, normalized)
		}
		if len(forms) == 0 {
			continue
		}
		patterns = append(patterns, pattern{canonical: canonical, forms: forms})
	}

	return &Extractor{patterns: patterns}
}

// Extract returns the sorted canonical skills found in text.
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return []string{}
	}

	normalized := NormalizeText(text)
	if normalized == "" {
		return []string{}
	}

	found := make([]string, 0)
	for _, p := range e.patterns {
		for _, form := range p.forms {
			if ContainsWord(normalized, form) {
				found = append(found, p.canonical)
				break
			}
		}
	}
	slices.Sort(found)
	return found
}

// Len returns the number of prepared patterns.
func (e *Extractor) Len() int {
	return len(e.patterns)
}

// ContainsWord reports whether phrase occurs in text delimited by the text
// edges or by non-word runes on both sides.
func ContainsWord(text, phrase string) bool {
	if phrase == "" {
		return false
	}

	offset := 0
	for {
		idx := strings.Index(text[offset:], phrase)
		if idx < 0 {
			return false
		}
		start := offset + idx
		end := start + len(phrase)

		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}

		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
	}
}

func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordRune(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordRune(r)
}
