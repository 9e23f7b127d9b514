package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize strips accents, lower-cases and collapses whitespace:
// "  Anillos  /  Compromiso " becomes "anillos / compromiso".
func Normalize(s string) string {
	// transformers carry state, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// Tokens splits a normalized string on runs of anything but [a-z0-9].
func Tokens(normalized string) []string {
	tokens := strings.FieldsFunc(normalized, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if tokens == nil {
		return []string{}
	}
	return tokens
}

// TitleCase capitalizes each word except Spanish articles and prepositions
// that are not the first word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lw := strings.ToLower(w)
		if _, ok := titleCaseLowerWords[lw]; ok && i > 0 {
			words[i] = lw
			continue
		}
		r, size := utf8.DecodeRuneInString(lw)
		words[i] = string(unicode.ToUpper(r)) + lw[size:]
	}
	return strings.Join(words, " ")
}
