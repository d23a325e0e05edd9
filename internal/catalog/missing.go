package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NoMissingLetter is reported when a name contains every letter a..z.
const NoMissingLetter = "_"

// MissingLetter returns the first letter of the alphabet that does not occur in
// name. Case and diacritics are ignored, so "Ágata" contains an "a".
func MissingLetter(name string) string {
	folded := strings.ToLower(foldAccents(name))
	var seen [26]bool
	for _, r := range folded {
		if r >= 'a' && r <= 'z' {
			seen[r-'a'] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			return string(rune('a' + i))
		}
	}
	return NoMissingLetter
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
