package quizgen

import (
	"math/rand"
	"strings"

	"pharmlet/internal/pool"
)

// FromPoolQuestion converts a hand-authored question into a runtime
// Question. Choice ordering is re-shuffled per session so repeat takers do
// not memorize positions.
func FromPoolQuestion(pq pool.PoolQuestion, rng *rand.Rand) Question {
	q := Question{
		Prompt:      pq.Prompt,
		Explanation: pq.Explain,
	}

	switch pq.Type {
	case "short":
		q.Format = FormatShort
		q.Family = FamilyNaming
		q.Answers = []string(pq.AnswerText)
		if len(q.Answers) == 0 {
			q.Answers = []string(pq.Answer)
		}
	case "tf":
		q.Format = FormatChoice
		q.Family = FamilyAttribute
		q.Choices = []string{"True", "False"}
		q.Answers = []string(pq.Answer)
	default: // mcq
		q.Format = FormatChoice
		q.Family = FamilyAttribute
		q.Choices = append([]string(nil), pq.Choices...)
		rng.Shuffle(len(q.Choices), func(i, j int) {
			q.Choices[i], q.Choices[j] = q.Choices[j], q.Choices[i]
		})
		q.Answers = []string(pq.Answer)
		if len(q.Answers) == 0 {
			q.Answers = []string(pq.AnswerText)
		}
	}

	// A mapping back to the source record supports hinting.
	if len(pq.Mapping) > 0 {
		rec := RecordFromMapping(pq.Mapping)
		q.Source = &rec
	}

	return q
}

// RecordFromMapping rebuilds a source record from its flattened form.
func RecordFromMapping(m map[string]string) pool.DrugRecord {
	return pool.DrugRecord{
		Generic:   m["generic"],
		Brands:    pool.AliasList(pool.SplitAliases(m["brand"])),
		Class:     m["class"],
		Category:  m["category"],
		Mechanism: m["moa"],
	}
}

// SourceMapping flattens a question's source record for persistence.
// RecordFromMapping reverses it. Returns nil when the question carries
// no source.
func SourceMapping(q *Question) map[string]string {
	if q.Source == nil {
		return nil
	}
	rec := q.Source
	m := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			m[key] = value
		}
	}
	set("generic", rec.Generic)
	set("brand", strings.Join([]string(rec.Brands), " / "))
	set("class", rec.Class)
	set("category", rec.Category)
	set("moa", rec.Mechanism)
	if len(m) == 0 {
		return nil
	}
	return m
}

// Hint returns a short scoped hint for the question, or "" when the source
// record carries nothing useful. Hints never leak the answer itself.
func Hint(q *Question) string {
	if q.Source == nil {
		return ""
	}
	rec := q.Source

	var parts []string
	switch q.Family {
	case FamilyNaming:
		if rec.Class != "" {
			parts = append(parts, "class: "+rec.Class)
		}
		if rec.Category != "" {
			parts = append(parts, "category: "+rec.Category)
		}
	default:
		if rec.Category != "" && q.Attribute != AttrCategory {
			parts = append(parts, "category: "+rec.Category)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ")
}
