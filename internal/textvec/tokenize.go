package textvec

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const minTokenRunes = 2

// Tokenize lowercases text and splits it into word tokens of at least two
// runes, dropping English stop-words. Word runes are letters, numbers and '_'.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) < minTokenRunes || IsStopWord(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
