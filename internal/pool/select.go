package pool

import (
	"math/rand"
	"strings"
	"time"
)

// Counts for a generated lab quiz: new material from the current unit plus
// review material from earlier units.
const (
	NewPerQuiz    = 6
	ReviewPerQuiz = 4
)

// NewRand returns a rand.Rand for shuffling. A non-zero seed gives a
// reproducible order; zero falls back to the clock.
func NewRand(seed int64) *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewSource(seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// SelectForUnit picks the records for a generated quiz covering curriculum
// unit n: up to NewPerQuiz new records tagged (lab 2, quiz n) and up to
// ReviewPerQuiz review records tagged (lab 1, quiz <= n), deduplicated by
// generic name. Both groups are shuffled before truncation so repeated
// builds draw different review material.
func SelectForUnit(records []DrugRecord, unit int, rng *rand.Rand) []DrugRecord {
	var fresh, review []DrugRecord
	for _, r := range records {
		switch {
		case r.Meta.Lab == 2 && r.Meta.Quiz == unit:
			fresh = append(fresh, r)
		case r.Meta.Lab == 1 && r.Meta.Quiz <= unit:
			review = append(review, r)
		}
	}

	ShuffleRecords(fresh, rng)
	ShuffleRecords(review, rng)

	selected := make([]DrugRecord, 0, NewPerQuiz+ReviewPerQuiz)
	seen := make(map[string]bool)

	for _, r := range fresh {
		if len(selected) >= NewPerQuiz {
			break
		}
		key := strings.ToLower(r.Generic)
		if seen[key] {
			continue
		}
		seen[key] = true
		selected = append(selected, r)
	}

	count := 0
	for _, r := range review {
		if count >= ReviewPerQuiz {
			break
		}
		key := strings.ToLower(r.Generic)
		if seen[key] {
			continue
		}
		seen[key] = true
		selected = append(selected, r)
		count++
	}

	return selected
}

// ShuffleRecords shuffles records in place.
func ShuffleRecords(records []DrugRecord, rng *rand.Rand) {
	rng.Shuffle(len(records), func(i, j int) {
		records[i], records[j] = records[j], records[i]
	})
}

// Limit truncates records to at most n entries. n <= 0 means no limit.
func Limit(records []DrugRecord, n int) []DrugRecord {
	if n <= 0 || n >= len(records) {
		return records
	}
	return records[:n]
}
