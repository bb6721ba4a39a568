package quizgen

import (
	"math/rand"
	"strings"
	"testing"

	"pharmlet/internal/pool"
)

func distractorPool() []pool.DrugRecord {
	return []pool.DrugRecord{
		{Generic: "lisinopril", Brands: pool.AliasList{"Prinivil"}, Class: "ACE inhibitor", Category: "Antihypertensive", Mechanism: "blocks conversion of angiotensin I to II"},
		{Generic: "enalapril", Brands: pool.AliasList{"Vasotec"}, Class: "ACE inhibitor", Category: "Heart failure", Mechanism: "inhibits ACE"},
		{Generic: "losartan", Brands: pool.AliasList{"Cozaar"}, Class: "ARB", Category: "Antihypertensive", Mechanism: "blocks angiotensin II receptors"},
		{Generic: "furosemide", Brands: pool.AliasList{"Lasix"}, Class: "Loop diuretic", Category: "Diuretic", Mechanism: "inhibits Na-K-2Cl in the thick ascending limb"},
		{Generic: "metformin", Brands: pool.AliasList{"Glucophage"}, Class: "Biguanide", Category: "Antidiabetic", Mechanism: "decreases hepatic glucose production"},
	}
}

func TestSelectDistractors_NeverTargetOrDuplicate(t *testing.T) {
	records := distractorPool()
	target := records[0]
	rng := rand.New(rand.NewSource(7))

	got := SelectDistractors(target, records, AttrMechanism, DistractorCount, rng)
	if len(got) != DistractorCount {
		t.Fatalf("got %d distractors, want %d", len(got), DistractorCount)
	}

	seen := make(map[string]bool)
	for _, v := range got {
		key := strings.ToLower(v)
		if strings.EqualFold(v, target.Mechanism) {
			t.Errorf("distractor %q equals the target value", v)
		}
		if seen[key] {
			t.Errorf("duplicate distractor %q", v)
		}
		seen[key] = true
	}
}

func TestSelectDistractors_TierOrdering(t *testing.T) {
	records := distractorPool()
	target := records[0] // class ACE inhibitor, category Antihypertensive
	rng := rand.New(rand.NewSource(1))

	// With n=1 the only candidate sharing the target's class must win.
	got := SelectDistractors(target, records, AttrMechanism, 1, rng)
	if len(got) != 1 {
		t.Fatalf("got %d distractors, want 1", len(got))
	}
	if got[0] != "inhibits ACE" {
		t.Errorf("distractor = %q, want the same-class candidate %q", got[0], "inhibits ACE")
	}

	// With n=2 the second pick must come from the shared-category tier.
	got = SelectDistractors(target, records, AttrMechanism, 2, rng)
	if len(got) != 2 {
		t.Fatalf("got %d distractors, want 2", len(got))
	}
	if got[1] != "blocks angiotensin II receptors" {
		t.Errorf("second distractor = %q, want the same-category candidate", got[1])
	}
}

func TestSelectDistractors_FewerWhenPoolIsSmall(t *testing.T) {
	records := distractorPool()[:2]
	rng := rand.New(rand.NewSource(3))

	got := SelectDistractors(records[0], records, AttrMechanism, DistractorCount, rng)
	if len(got) != 1 {
		t.Errorf("got %d distractors from a 2-record pool, want 1", len(got))
	}
}

func TestSelectDistractors_SkipsMatchingValues(t *testing.T) {
	// For attr=class, every record sharing the target's class carries the
	// target value itself and must be skipped.
	records := distractorPool()
	rng := rand.New(rand.NewSource(5))

	got := SelectDistractors(records[0], records, AttrClass, DistractorCount, rng)
	for _, v := range got {
		if strings.EqualFold(v, "ACE inhibitor") {
			t.Errorf("distractor %q equals the target class", v)
		}
	}
}
