package normalization

import (
	"strconv"
	"strings"
	"unicode"
)

// CityForStorage lower-cases a city name. It runs exactly once per write,
// at the moment the field is set; reads never re-normalize.
func CityForStorage(input string) string {
	return strings.ToLower(input)
}

// CityForDisplay title-cases a stored city name: the first letter of every
// whitespace-delimited word is upper-cased, the rest lower-cased. Empty
// input yields an empty string. Applying it to an already title-cased
// value is a no-op.
func CityForDisplay(stored string) string {
	if stored == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(stored))
	startOfWord := true
	for _, r := range stored {
		switch {
		case unicode.IsSpace(r):
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			startOfWord = false
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// PriceForDisplay renders a price with exactly two fractional digits and
// no thousands separators. The stored value keeps whatever precision the
// column allows; only the display form is fixed-point.
func PriceForDisplay(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
