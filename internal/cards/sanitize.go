package cards

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letterforms covers letters that do not decompose into an ASCII base plus
// combining marks.
var letterforms = strings.NewReplacer(
	"æ", "ae",
	"œ", "oe",
	"ß", "ss",
	"ø", "o",
	"ł", "l",
	"đ", "d",
	"ð", "d",
	"þ", "th",
	"ı", "i",
	"‘", "'",
	"’", "'",
	"ʼ", "'",
	"‐", "-",
	"‑", "-",
	"–", "-",
)

// Sanitize canonicalizes a card name into a lookup key: lowercase, accents
// folded to ASCII, punctuation other than hyphens, commas and apostrophes
// removed, and whitespace collapsed to single spaces.
//
// Sanitize is idempotent.
func Sanitize(s string) string {
	s = strings.ToLower(s)
	s = collapseSpace(s)
	s = foldAccents(s)
	s = letterforms.Replace(s)
	s = strings.Map(keepRune, s)
	// Stripping can leave adjacent spaces, or runes that compose once their
	// separator is gone, behind.
	s = norm.NFC.String(s)
	return collapseSpace(s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func keepRune(r rune) rune {
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return r
	case unicode.IsSpace(r):
		return ' '
	case r == '-' || r == ',' || r == '\'':
		return r
	}
	return -1
}
