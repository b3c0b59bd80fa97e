package corpus

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Text format names.
const (
	FormatOrigFull   = "text-orig-full"
	FormatOrigPlain  = "text-orig-plain"
	FormatTransPlain = "text-trans-plain"
)

// formatFeatures maps each text format to the word feature it prints.
// Every format appends the word's "after" feature.
var formatFeatures = map[string]string{
	FormatOrigFull:   "text",
	FormatOrigPlain:  "plain",
	FormatTransPlain: "trans",
}

var formatOrder = []string{FormatOrigFull, FormatOrigPlain, FormatTransPlain}

// StripAccents removes combining marks (accents, breathings, iota
// subscripts) and keeps case: "Βίβλος" becomes "Βιβλος".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

var translitTable = map[rune]string{
	'α': "a", 'β': "b", 'γ': "g", 'δ': "d", 'ε': "e", 'ζ': "z", 'η': "h", 'θ': "q",
	'ι': "i", 'κ': "k", 'λ': "l", 'μ': "m", 'ν': "n", 'ξ': "c", 'ο': "o", 'π': "p",
	'ρ': "r", 'σ': "s", 'ς': "s", 'τ': "t", 'υ': "u", 'φ': "f", 'χ': "x", 'ψ': "y",
	'ω': "w",
}

// Transliterate maps Greek letters to the Latin beta-code letters used by
// the transcription format. Accents are dropped first; letters without a
// mapping pass through unchanged.
func Transliterate(s string) string {
	var sb strings.Builder
	for _, r := range StripAccents(s) {
		lower := unicode.ToLower(r)
		latin, ok := translitTable[lower]
		if !ok {
			sb.WriteRune(r)
			continue
		}
		if lower != r {
			latin = strings.ToUpper(latin)
		}
		sb.WriteString(latin)
	}
	return sb.String()
}
