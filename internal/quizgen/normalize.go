package quizgen

import (
	"regexp"
	"strconv"
	"strings"
)

// stripPunct removes the punctuation that students habitually add or omit.
// Slashes and hyphens survive normalization; they are structural separators
// handled by the part matcher.
var stripPunct = strings.NewReplacer(
	".", "", ",", "", ";", "", ":", "",
	"'", "", "\"", "", "!", "", "?", "",
	"(", "", ")", "",
)

// Normalize lowercases, strips punctuation, and collapses internal
// whitespace so "H.C.T.Z" and "hctz" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = stripPunct.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

var numberFilter = regexp.MustCompile(`[^0-9.\-+eE]`)

// parseNumber extracts a numeric value from a string that may carry units,
// e.g. "5 mg" or "0.5%". Returns false when no digits are present or the
// remainder does not parse.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "0123456789") {
		return 0, false
	}
	filtered := numberFilter.ReplaceAllString(s, "")
	n, err := strconv.ParseFloat(strings.TrimSpace(filtered), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

var (
	toleranceRe = regexp.MustCompile(`^\s*([+-]?[0-9]*\.?[0-9]+)\s*(?:±|\+/-)\s*([0-9]*\.?[0-9]+)\s*$`)
	rangeRe     = regexp.MustCompile(`^\s*([+-]?[0-9]*\.?[0-9]+)\s*[-–]\s*([+-]?[0-9]*\.?[0-9]+)\s*$`)
)

// parseRange interprets a canonical answer written as a tolerance
// ("5 ± 0.5") or a textual range ("4.5–5.5") as an inclusive window.
func parseRange(s string) (min, max float64, ok bool) {
	if m := toleranceRe.FindStringSubmatch(s); m != nil {
		val, err1 := strconv.ParseFloat(m[1], 64)
		tol, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			return val - tol, val + tol, true
		}
	}
	if m := rangeRe.FindStringSubmatch(s); m != nil {
		a, err1 := strconv.ParseFloat(m[1], 64)
		b, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil {
			if a > b {
				a, b = b, a
			}
			return a, b, true
		}
	}
	return 0, 0, false
}

// splitAnyOf splits a canonical answer on list separators, where matching
// any one member is acceptable.
func splitAnyOf(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var partSeparatorRe = regexp.MustCompile(`\s*/\s*|\s+and\s+|\s+[-–]\s+|\s*\+\s*`)

// splitParts splits a multi-part answer ("ACE inhibitor / diuretic",
// "X and Y") into its parts. Hyphens only separate when surrounded by
// spaces, so hyphenated drug names stay intact.
func splitParts(s string) []string {
	parts := partSeparatorRe.Split(s, -1)
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
