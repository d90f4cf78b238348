package company

import (
	"strings"
	"unicode"
)

// legalSuffixes holds normalized (lowercase, punctuation stripped) corporate
// suffixes, including two-token forms like "pvt ltd".
var legalSuffixes = map[string]struct{}{
	"llc":     {},
	"inc":     {},
	"corp":    {},
	"ltd":     {},
	"pvt ltd": {},
	"plc":     {},
	"sa":      {},
	"ag":      {},
	"gmbh":    {},
	"co":      {},
	"company": {},
	"llp":     {},
	"limited": {},
}

// NormalizeDomain canonicalizes a domain for matching and storage: lowercase,
// scheme and www. prefix removed, path/query/fragment dropped, port and
// trailing dot stripped. Returns "" when nothing domain-like remains.
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	if d == "" {
		return ""
	}
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if i := strings.IndexByte(d, ':'); i >= 0 {
		d = d[:i]
	}
	d = strings.TrimSuffix(d, ".")
	return strings.TrimSpace(d)
}

// StripLegalSuffixes removes known legal suffixes from the end of a company
// name. Comparison is case-insensitive and ignores punctuation within the
// suffix; the remaining name keeps its original casing.
func StripLegalSuffixes(name string) string {
	tokens := strings.Fields(strings.TrimSpace(name))
	for len(tokens) > 0 {
		last := lettersOnly(tokens[len(tokens)-1])
		if last == "" {
			tokens = tokens[:len(tokens)-1]
			continue
		}
		if len(tokens) >= 2 {
			twoToken := lettersOnly(tokens[len(tokens)-2]) + " " + last
			if _, ok := legalSuffixes[twoToken]; ok {
				tokens = tokens[:len(tokens)-2]
				continue
			}
		}
		if _, ok := legalSuffixes[last]; ok {
			tokens = tokens[:len(tokens)-1]
			continue
		}
		break
	}
	return strings.Join(tokens, " ")
}

func lettersOnly(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeName produces the matching key for a company name: legal suffixes
// stripped, lowercased, punctuation removed, whitespace collapsed.
func NormalizeName(name string) string {
	stripped := StripLegalSuffixes(name)
	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Slugify converts a name or domain into a URL-safe slug.
func Slugify(s string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
