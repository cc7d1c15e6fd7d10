// Package textnorm reduces Persian/Arabic text to a canonical form so that
// answers differing only in script variant, digit system, diacritics or
// joiner placement compare equal.
package textnorm

import (
	"strings"
	"unicode"
)

// Invisible joiners and direction marks that carry no comparison meaning.
var invisibleRunes = map[rune]bool{
	'\u200c': true, // zero-width non-joiner
	'\u200d': true, // zero-width joiner
	'\u200e': true, // left-to-right mark
	'\u200f': true, // right-to-left mark
	'\u200b': true, // zero-width space
	'\ufeff': true, // byte order mark
	'\u0640': true, // tatweel (kashida)
}

// letterTable unifies Arabic-style letterforms with their Persian canonical
// equivalents. Content authored on Arabic keyboards and answers typed on
// Persian ones must land on the same rune.
var letterTable = map[rune]rune{
	'ك': 'ک', // Arabic kaf
	'ي': 'ی', // Arabic yeh
	'ى': 'ی', // alef maksura
	'ئ': 'ی', // yeh with hamza
	'أ': 'ا', // alef with hamza above
	'إ': 'ا', // alef with hamza below
	'آ': 'ا', // alef with madda
	'ٱ': 'ا', // alef wasla
	'ؤ': 'و', // waw with hamza
	'ة': 'ه', // teh marbuta
}

// digitTable folds Persian (U+06F0..) and Eastern-Arabic (U+0660..) digit
// glyphs to ASCII.
var digitTable = map[rune]rune{
	'۰': '0', '۱': '1', '۲': '2', '۳': '3', '۴': '4',
	'۵': '5', '۶': '6', '۷': '7', '۸': '8', '۹': '9',
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
}

func isArabicDiacritic(r rune) bool {
	// Harakat range fathatan..wavy hamza below.
	return r >= 0x064B && r <= 0x065F
}

// Normalize maps s to its canonical comparison form. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return normalize(s, true)
}

// NormalizeCaseSensitive applies every rule except the final casefold. Used
// for blocks that opt into case-sensitive matching.
func NormalizeCaseSensitive(s string) string {
	return normalize(s, false)
}

func normalize(s string, foldCase bool) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case invisibleRunes[r]:
			// dropped entirely; میروم and می‌روم must compare equal
		case isArabicDiacritic(r):
			// dropped
		case unicode.IsSpace(r):
			space = true
		default:
			if m, ok := letterTable[r]; ok {
				r = m
			}
			if d, ok := digitTable[r]; ok {
				r = d
			}
			if foldCase {
				r = unicode.ToLower(r)
			}
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Equal reports whether a and b normalize to the same form.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
