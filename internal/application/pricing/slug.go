package pricing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// slugifyCode derives a price list code from a display name. Diacritics are
// stripped, runs of non-alphanumerics collapse to single underscores.
func slugifyCode(name string) string {
	flat, _, err := transform.String(deaccent, name)
	if err != nil {
		flat = name
	}

	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToUpper(flat) {
		switch {
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	code := strings.Trim(b.String(), "_")
	if code == "" {
		code = "PRICE_LIST"
	}
	if len(code) > 50 {
		code = code[:50]
	}
	return code
}
