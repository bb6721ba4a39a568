package quizgen

import (
	"fmt"
	"math/rand"
	"strings"

	"pharmlet/internal/pool"
)

// Family selection weights. Families are strictly type-locked (naming is
// always free-text, attribute/paired/negative always choice-based); the
// weights only decide which representable family a record becomes.
var familyWeights = []struct {
	family Family
	weight int
}{
	{FamilyNaming, 3},
	{FamilyAttribute, 3},
	{FamilyPaired, 2},
	{FamilyNegative, 1},
}

// Generate materializes one question for rec, drawing distractors from the
// rest of the pool. A record too sparse for any family fails closed to a
// trivial identity question instead of erroring.
func Generate(rec pool.DrugRecord, records []pool.DrugRecord, rng *rand.Rand) Question {
	families := representableFamilies(rec, records)
	if len(families) == 0 {
		return genIdentity(rec)
	}

	switch pickFamily(families, rng) {
	case FamilyNaming:
		return genNaming(rec, rng)
	case FamilyAttribute:
		return genAttribute(rec, records, rng)
	case FamilyPaired:
		return genPaired(rec, records, rng)
	case FamilyNegative:
		return genNegative(rec, records, rng)
	default:
		return genIdentity(rec)
	}
}

// GenerateBatch produces one question per record, in record order.
func GenerateBatch(records []pool.DrugRecord, rng *rand.Rand) []Question {
	questions := make([]Question, 0, len(records))
	for i := range records {
		questions = append(questions, Generate(records[i], records, rng))
	}
	return questions
}

// representableFamilies returns the families rec can support given the pool.
func representableFamilies(rec pool.DrugRecord, records []pool.DrugRecord) []Family {
	var fams []Family
	if rec.Generic != "" && len(rec.Brands) > 0 {
		fams = append(fams, FamilyNaming)
	}
	if rec.Class != "" || rec.Category != "" || rec.Mechanism != "" {
		fams = append(fams, FamilyAttribute)
	}
	if len(mispairCandidates(rec, records)) >= DistractorCount {
		fams = append(fams, FamilyPaired)
	}
	if negativeAttribute(rec, records) != "" {
		fams = append(fams, FamilyNegative)
	}
	return fams
}

// pickFamily selects one family by weighted draw.
func pickFamily(fams []Family, rng *rand.Rand) Family {
	total := 0
	for _, fw := range familyWeights {
		for _, f := range fams {
			if f == fw.family {
				total += fw.weight
			}
		}
	}
	if total == 0 {
		return fams[rng.Intn(len(fams))]
	}

	roll := rng.Intn(total)
	for _, fw := range familyWeights {
		for _, f := range fams {
			if f != fw.family {
				continue
			}
			if roll < fw.weight {
				return f
			}
			roll -= fw.weight
		}
	}
	return fams[0]
}

func genNaming(rec pool.DrugRecord, rng *rand.Rand) Question {
	brand := rec.Brand()
	if rng.Intn(2) == 0 {
		return Question{
			Family:      FamilyNaming,
			Format:      FormatShort,
			Prompt:      fmt.Sprintf("What is the generic name for %s?", brand),
			Answers:     []string{rec.Generic},
			Explanation: fmt.Sprintf("%s is the brand name of %s.", brand, rec.Generic),
			Source:      &rec,
		}
	}
	return Question{
		Family:      FamilyNaming,
		Format:      FormatShort,
		Prompt:      fmt.Sprintf("What is the brand name for %s?", rec.Generic),
		Answers:     append([]string(nil), rec.Brands...),
		Explanation: fmt.Sprintf("%s is sold as %s.", rec.Generic, strings.Join([]string(rec.Brands), " / ")),
		Source:      &rec,
	}
}

func genAttribute(rec pool.DrugRecord, records []pool.DrugRecord, rng *rand.Rand) Question {
	var attrs []Attribute
	for _, a := range []Attribute{AttrClass, AttrCategory, AttrMechanism} {
		if attributeValue(rec, a) != "" {
			attrs = append(attrs, a)
		}
	}
	attr := attrs[rng.Intn(len(attrs))]
	value := attributeValue(rec, attr)

	choices := SelectDistractors(rec, records, attr, DistractorCount, rng)
	choices = append(choices, value)
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	var prompt string
	switch attr {
	case AttrClass:
		prompt = fmt.Sprintf("Which class does %s belong to?", rec.Generic)
	case AttrCategory:
		prompt = fmt.Sprintf("What is the category of %s?", rec.Generic)
	default:
		prompt = fmt.Sprintf("What is the mechanism of action of %s?", rec.Generic)
	}

	return Question{
		Family:      FamilyAttribute,
		Format:      FormatChoice,
		Prompt:      prompt,
		Choices:     choices,
		Answers:     []string{value},
		Explanation: fmt.Sprintf("The %s of %s is: %s.", AttributeLabel(attr), rec.Generic, value),
		Attribute:   attr,
		Source:      &rec,
	}
}

// pairText formats a brand+class option.
func pairText(brand, class string) string {
	return brand + " / " + class
}

// mispairCandidates builds the deliberately wrong brand+class pairings for
// rec: wrong brand with the right class, the right brand with a wrong class,
// and fully wrong pairs. Deduplicated; the correct pairing is excluded.
func mispairCandidates(rec pool.DrugRecord, records []pool.DrugRecord) []string {
	brand := rec.Brand()
	if brand == "" || rec.Class == "" {
		return nil
	}

	var otherBrands, otherClasses []string
	for _, r := range records {
		if strings.EqualFold(r.Generic, rec.Generic) {
			continue
		}
		if b := r.Brand(); b != "" && !strings.EqualFold(b, brand) {
			otherBrands = append(otherBrands, b)
		}
		if r.Class != "" && !strings.EqualFold(r.Class, rec.Class) {
			otherClasses = append(otherClasses, r.Class)
		}
	}

	seen := map[string]bool{strings.ToLower(pairText(brand, rec.Class)): true}
	var out []string
	add := func(b, c string) {
		text := pairText(b, c)
		key := strings.ToLower(text)
		if !seen[key] {
			seen[key] = true
			out = append(out, text)
		}
	}

	// One of each mispair shape first, then the rest as filler.
	if len(otherBrands) > 0 {
		add(otherBrands[0], rec.Class)
	}
	if len(otherClasses) > 0 {
		add(brand, otherClasses[0])
	}
	if len(otherBrands) > 0 && len(otherClasses) > 0 {
		add(otherBrands[len(otherBrands)-1], otherClasses[len(otherClasses)-1])
	}
	for _, b := range otherBrands {
		for _, c := range otherClasses {
			add(b, c)
		}
	}
	for _, b := range otherBrands {
		add(b, rec.Class)
	}
	for _, c := range otherClasses {
		add(brand, c)
	}

	return out
}

func genPaired(rec pool.DrugRecord, records []pool.DrugRecord, rng *rand.Rand) Question {
	correct := pairText(rec.Brand(), rec.Class)
	mispairs := mispairCandidates(rec, records)
	rng.Shuffle(len(mispairs), func(i, j int) {
		mispairs[i], mispairs[j] = mispairs[j], mispairs[i]
	})
	if len(mispairs) > DistractorCount {
		mispairs = mispairs[:DistractorCount]
	}

	choices := append(mispairs, correct)
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return Question{
		Family:      FamilyPaired,
		Format:      FormatChoice,
		Prompt:      fmt.Sprintf("Which option pairs the correct brand name and class for %s?", rec.Generic),
		Choices:     choices,
		Answers:     []string{correct},
		Explanation: fmt.Sprintf("%s is %s, a %s.", rec.Generic, rec.Brand(), rec.Class),
		Source:      &rec,
	}
}

// negativeAttribute returns an attribute usable for a negative question:
// at least three other records share rec's value and at least one record
// carries a different value. Empty when none qualifies.
func negativeAttribute(rec pool.DrugRecord, records []pool.DrugRecord) Attribute {
	for _, a := range []Attribute{AttrClass, AttrCategory} {
		value := attributeValue(rec, a)
		if value == "" {
			continue
		}
		sharing, differing := 0, 0
		for _, r := range records {
			if strings.EqualFold(r.Generic, rec.Generic) {
				continue
			}
			v := attributeValue(r, a)
			switch {
			case v == "":
			case strings.EqualFold(v, value):
				sharing++
			default:
				differing++
			}
		}
		if sharing >= DistractorCount && differing >= 1 {
			return a
		}
	}
	return ""
}

func genNegative(rec pool.DrugRecord, records []pool.DrugRecord, rng *rand.Rand) Question {
	attr := negativeAttribute(rec, records)
	value := attributeValue(rec, attr)

	var sharing, differing []pool.DrugRecord
	for _, r := range records {
		if strings.EqualFold(r.Generic, rec.Generic) {
			continue
		}
		v := attributeValue(r, attr)
		switch {
		case v == "":
		case strings.EqualFold(v, value):
			sharing = append(sharing, r)
		default:
			differing = append(differing, r)
		}
	}

	pool.ShuffleRecords(sharing, rng)
	pool.ShuffleRecords(differing, rng)

	odd := differing[0]
	choices := []string{odd.Generic}
	for i := 0; i < DistractorCount && i < len(sharing); i++ {
		choices = append(choices, sharing[i].Generic)
	}
	rng.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return Question{
		Family:      FamilyNegative,
		Format:      FormatChoice,
		Prompt:      fmt.Sprintf("Which of these drugs does NOT have the %s %q?", AttributeLabel(attr), value),
		Choices:     choices,
		Answers:     []string{odd.Generic},
		Explanation: fmt.Sprintf("%s has the %s %q.", odd.Generic, AttributeLabel(attr), attributeValue(odd, attr)),
		Attribute:   attr,
		Source:      &rec,
	}
}

// genIdentity is the fail-closed fallback for degenerate records.
func genIdentity(rec pool.DrugRecord) Question {
	return Question{
		Family:  FamilyIdentity,
		Format:  FormatShort,
		Prompt:  fmt.Sprintf("Type the generic name: %s", rec.Generic),
		Answers: []string{rec.Generic},
		Source:  &rec,
	}
}
