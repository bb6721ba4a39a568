package pool

import (
	"strings"
	"testing"
)

func unitRecords() []DrugRecord {
	recs := make([]DrugRecord, 0, 20)
	for i := 0; i < 10; i++ {
		recs = append(recs, DrugRecord{
			Generic: "newdrug" + string(rune('a'+i)),
			Meta:    Curriculum{Lab: 2, Quiz: 2},
		})
	}
	for i := 0; i < 6; i++ {
		recs = append(recs, DrugRecord{
			Generic: "olddrug" + string(rune('a'+i)),
			Meta:    Curriculum{Lab: 1, Quiz: 1},
		})
	}
	// Future-unit material must never be drawn.
	recs = append(recs, DrugRecord{Generic: "futuredrug", Meta: Curriculum{Lab: 2, Quiz: 3}})
	return recs
}

func TestSelectForUnit_Counts(t *testing.T) {
	rng := NewRand(17)
	got := SelectForUnit(unitRecords(), 2, rng)

	if len(got) != NewPerQuiz+ReviewPerQuiz {
		t.Fatalf("selected %d records, want %d", len(got), NewPerQuiz+ReviewPerQuiz)
	}

	fresh, review := 0, 0
	for _, r := range got {
		switch {
		case r.Meta.Lab == 2 && r.Meta.Quiz == 2:
			fresh++
		case r.Meta.Lab == 1:
			review++
		default:
			t.Errorf("selected out-of-unit record %q (lab %d quiz %d)", r.Generic, r.Meta.Lab, r.Meta.Quiz)
		}
	}
	if fresh != NewPerQuiz {
		t.Errorf("fresh count = %d, want %d", fresh, NewPerQuiz)
	}
	if review != ReviewPerQuiz {
		t.Errorf("review count = %d, want %d", review, ReviewPerQuiz)
	}
}

func TestSelectForUnit_ShortPool(t *testing.T) {
	records := []DrugRecord{
		{Generic: "a", Meta: Curriculum{Lab: 2, Quiz: 1}},
		{Generic: "b", Meta: Curriculum{Lab: 1, Quiz: 1}},
	}
	got := SelectForUnit(records, 1, NewRand(1))
	if len(got) != 2 {
		t.Errorf("selected %d records from a 2-record pool, want 2", len(got))
	}
}

func TestSelectForUnit_DedupByGeneric(t *testing.T) {
	records := []DrugRecord{
		{Generic: "Aspirin", Meta: Curriculum{Lab: 2, Quiz: 1}},
		{Generic: "aspirin", Meta: Curriculum{Lab: 1, Quiz: 1}},
		{Generic: "warfarin", Meta: Curriculum{Lab: 1, Quiz: 1}},
	}
	got := SelectForUnit(records, 1, NewRand(4))

	seen := make(map[string]bool)
	for _, r := range got {
		key := strings.ToLower(r.Generic)
		if seen[key] {
			t.Errorf("generic %q selected twice", r.Generic)
		}
		seen[key] = true
	}
}

func TestNewRand_SeededDeterminism(t *testing.T) {
	a := SelectForUnit(unitRecords(), 2, NewRand(21))
	b := SelectForUnit(unitRecords(), 2, NewRand(21))

	for i := range a {
		if a[i].Generic != b[i].Generic {
			t.Fatalf("record %d differs between same-seed runs: %q vs %q", i, a[i].Generic, b[i].Generic)
		}
	}
}

func TestLimit(t *testing.T) {
	records := unitRecords()
	if got := Limit(records, 5); len(got) != 5 {
		t.Errorf("Limit(5) kept %d records, want 5", len(got))
	}
	if got := Limit(records, 0); len(got) != len(records) {
		t.Errorf("Limit(0) kept %d records, want all %d", len(got), len(records))
	}
	if got := Limit(records, 100); len(got) != len(records) {
		t.Errorf("Limit(100) kept %d records, want all %d", len(got), len(records))
	}
}
