package quizgen

import (
	"math/rand"
	"strings"

	"pharmlet/internal/pool"
)

// DistractorCount is the nominal number of wrong options per choice question.
const DistractorCount = 3

// SelectDistractors picks up to n plausible wrong values of attr for a
// question whose correct answer is target. Candidates are ranked by how
// close they sit to the target record: values from records sharing the
// target's class first, then its category, then anything else. Each tier is
// shuffled before it is drawn from, so repeated calls do not return a fixed
// set. Returns fewer than n when the pool cannot supply n distinct values;
// never returns the target or a duplicate.
func SelectDistractors(target pool.DrugRecord, records []pool.DrugRecord, attr Attribute, n int, rng *rand.Rand) []string {
	targetValue := attributeValue(target, attr)

	var near, mid, far []string
	for _, r := range records {
		if strings.EqualFold(r.Generic, target.Generic) {
			continue
		}
		v := attributeValue(r, attr)
		if v == "" || strings.EqualFold(v, targetValue) {
			continue
		}
		switch {
		case target.Class != "" && strings.EqualFold(r.Class, target.Class):
			near = append(near, v)
		case target.Category != "" && strings.EqualFold(r.Category, target.Category):
			mid = append(mid, v)
		default:
			far = append(far, v)
		}
	}

	picked := make([]string, 0, n)
	seen := map[string]bool{strings.ToLower(targetValue): true}

	for _, tier := range [][]string{near, mid, far} {
		if len(picked) >= n {
			break
		}
		rng.Shuffle(len(tier), func(i, j int) {
			tier[i], tier[j] = tier[j], tier[i]
		})
		for _, v := range tier {
			if len(picked) >= n {
				break
			}
			key := strings.ToLower(v)
			if seen[key] {
				continue
			}
			seen[key] = true
			picked = append(picked, v)
		}
	}

	return picked
}
