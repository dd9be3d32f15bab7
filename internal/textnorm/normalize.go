package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTokenLength is the shortest token Normalize keeps.
const MinTokenLength = 3

// Fold lowercases text and strips combining diacritical marks ("Luminária" -> "luminaria").
// Lowercasing uses Unicode case mapping and does not depend on the process locale.
func Fold(text string) string {
	if text == "" {
		return ""
	}
	return StripAccents(strings.ToLower(text))
}

// StripAccents removes combining marks without changing case.
func StripAccents(text string) string {
	// transform.Chain keeps internal state, so a fresh chain is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}

// Normalize folds text and splits it into search tokens.
// Tokens are separated by runs of whitespace, hyphens or commas; tokens shorter than
// MinTokenLength runes are dropped. Order and duplicates are preserved.
func Normalize(text string) []string {
	folded := Fold(text)
	if folded == "" {
		return []string{}
	}

	fields := strings.FieldsFunc(folded, isSeparator)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) < MinTokenLength {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// Join reassembles tokens into text that normalizes back to the same tokens.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '-' || r == ','
}
