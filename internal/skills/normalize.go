package skills

import (
	"strings"
	"unicode"
)

// asciiPunctuation is the set of ASCII punctuation and symbol characters
// removed by NormalizeText.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// NormalizeText lowercases text, strips punctuation, collapses whitespace runs
// to a single space and trims the result.
func NormalizeText(text string) string {
	if text == "" {
		return ""
	}

	stripped := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, strings.ToLower(text))

	return strings.Join(strings.Fields(stripped), " ")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
