package quizgen

import (
	"sort"
	"strconv"
	"strings"

	"pharmlet/internal/pool"
)

// RevealSentinel is the give-up input. It always scores incorrect but is
// flagged so the UI shows "revealed" rather than "wrong guess".
const RevealSentinel = "reveal"

// CheckAnswer evaluates the student's raw input against a question.
//
// Matching rules, in order:
//   - the reveal sentinel is always incorrect (and flagged Revealed)
//   - choice questions accept the option text or its 1-based index
//   - a canonical answer containing comma/semicolon accepts any one member
//   - a multi-part canonical answer (slash, spaced hyphen, the word "and")
//     matches part-for-part regardless of order
//   - numeric canonical answers with a tolerance or range accept any value
//     inside the window; plain numerics compare as numbers
//   - otherwise the normalized strings must be equal
func CheckAnswer(input string, q *Question) Verdict {
	input = strings.TrimSpace(input)
	if input == "" {
		return Verdict{}
	}
	if strings.EqualFold(input, RevealSentinel) {
		return Verdict{Revealed: true}
	}

	if q.Format == FormatChoice {
		return Verdict{Correct: checkChoice(input, q)}
	}

	for _, canonical := range q.Answers {
		// Naming questions treat a joined canonical like
		// "Prinivil / Zestril" as aliases: any one is correct.
		if q.Family == FamilyNaming {
			for _, alias := range pool.SplitAliases(canonical) {
				if Normalize(input) == Normalize(alias) {
					return Verdict{Correct: true}
				}
			}
		}
		if matchCanonical(input, canonical) {
			return Verdict{Correct: true}
		}
	}
	return Verdict{}
}

// checkChoice matches choice input by 1-based index or by option text.
func checkChoice(input string, q *Question) bool {
	if idx, err := strconv.Atoi(input); err == nil && idx >= 1 && idx <= len(q.Choices) {
		input = q.Choices[idx-1]
	}
	for _, canonical := range q.Answers {
		if Normalize(input) == Normalize(canonical) {
			return true
		}
	}
	return false
}

// matchCanonical applies the free-text matching ladder against one
// canonical answer string.
func matchCanonical(input, canonical string) bool {
	// Any-of: "nausea, vomiting" accepts either member.
	if members := splitAnyOf(canonical); len(members) > 1 {
		for _, m := range members {
			if matchCanonical(input, m) {
				return true
			}
		}
		return false
	}

	// Multi-part, order-independent: "X / Y" matches "Y / X". Numeric
	// canonicals are excluded so ranges like "4.5 - 5.5" fall through to
	// the window check.
	if _, _, isRange := parseRange(canonical); !isRange {
		if parts := splitParts(canonical); len(parts) > 1 {
			return matchParts(input, parts)
		}
	}

	// Tolerance / range window.
	if min, max, ok := parseRange(canonical); ok {
		n, numeric := parseNumber(input)
		return numeric && n >= min && n <= max
	}

	// Numeric equality ("5 mg" matches "5").
	if want, ok := parseNumber(canonical); ok {
		if Normalize(input) == Normalize(canonical) {
			return true
		}
		got, numeric := parseNumber(input)
		return numeric && got == want
	}

	return Normalize(input) == Normalize(canonical)
}

// matchParts compares the user input against a multi-part canonical answer,
// sorting both sides' normalized parts so order does not matter.
func matchParts(input string, canonicalParts []string) bool {
	inputParts := splitParts(input)
	if len(inputParts) != len(canonicalParts) {
		return false
	}

	want := make([]string, len(canonicalParts))
	for i, p := range canonicalParts {
		want[i] = Normalize(p)
	}
	got := make([]string, len(inputParts))
	for i, p := range inputParts {
		got[i] = Normalize(p)
	}
	sort.Strings(want)
	sort.Strings(got)

	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
