// Package naming derives identifiers from display labels.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds diacritics and drops every rune that cannot appear in an identifier.
// "Olá Mundo!" becomes "OlaMundo".
func Normalize(label string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(folder, label)
	if err != nil {
		folded = label
	}

	var builder strings.Builder

	for _, r := range folded {
		if r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}
