package internals

import (
	"strings"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lower = cases.Lower(language.Und)

// NormalizeContent lower-cases text, strips punctuation and symbols and
// collapses whitespace, so that two reviews differing only in formatting compare
// as equal.
func NormalizeContent(text string) string {
	text = lower.String(norm.NFC.String(text))

	stripped := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, text)

	return strings.Join(strings.Fields(stripped), " ")
}

// Similarity returns the Sorensen-Dice coefficient over character bigrams of a
// and b, in [0, 1]. Inputs are compared as given: normalize them first.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	return strutil.Similarity(a, b, metrics.NewSorensenDice())
}
