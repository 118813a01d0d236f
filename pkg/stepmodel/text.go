package stepmodel

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var printable = runes.Map(func(r rune) rune {
	if r < 0x20 || r > 0x7e {
		return '?'
	}
	return r
})

// ASCII folds s to printable ASCII: accented letters lose their accents and
// any other rune outside the printable range becomes '?'.
func ASCII(s string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), printable)
	out, _, err := transform.String(fold, s)
	if err != nil {
		out, _, _ = transform.String(printable, s)
	}
	return out
}
