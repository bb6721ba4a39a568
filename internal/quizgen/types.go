package quizgen

import "pharmlet/internal/pool"

// Family identifies the shape used to turn a record into a question.
type Family string

const (
	// FamilyNaming asks for the brand given the generic or vice versa.
	// Always free-text, never choice-based.
	FamilyNaming Family = "naming"

	// FamilyAttribute asks for the record's class, category, or mechanism
	// as a single-choice question.
	FamilyAttribute Family = "attribute"

	// FamilyPaired asks for the correct brand+class pairing among
	// deliberately mispaired combinations.
	FamilyPaired Family = "paired"

	// FamilyNegative asks which listed drug does NOT share an attribute
	// value with the others.
	FamilyNegative Family = "negative"

	// FamilyIdentity is the fail-closed fallback for records too sparse
	// to support any other family.
	FamilyIdentity Family = "identity"
)

// Format describes how the student answers a question. Values match the
// "type" field of hand-authored quiz files.
type Format string

const (
	FormatShort  Format = "short" // typed free-text answer
	FormatChoice Format = "mcq"   // pick one of the listed choices
)

// Attribute names a quizzable field of a DrugRecord.
type Attribute string

const (
	AttrClass     Attribute = "class"
	AttrCategory  Attribute = "category"
	AttrMechanism Attribute = "moa"
)

// AttributeLabel returns the display name used in prompts.
func AttributeLabel(a Attribute) string {
	switch a {
	case AttrClass:
		return "class"
	case AttrCategory:
		return "category"
	case AttrMechanism:
		return "mechanism of action"
	default:
		return string(a)
	}
}

// attributeValue reads the named field from a record.
func attributeValue(r pool.DrugRecord, a Attribute) string {
	switch a {
	case AttrClass:
		return r.Class
	case AttrCategory:
		return r.Category
	case AttrMechanism:
		return r.Mechanism
	default:
		return ""
	}
}

// Question is a materialized quiz item ready for display.
type Question struct {
	// Family records which generation strategy produced the question.
	Family Family

	// Format indicates how the student answers.
	Format Format

	// Prompt is the question text.
	Prompt string

	// Choices is populated only for FormatChoice. Exactly one entry
	// matches an accepted answer; the rest are distractors.
	Choices []string

	// Answers holds the accepted canonical answers. For free-text naming
	// questions over a multi-brand record there is one entry per alias;
	// matching any one of them is correct.
	Answers []string

	// Explanation is shown after answering and in review mode.
	Explanation string

	// Attribute is the field quizzed, when the family targets one.
	Attribute Attribute

	// Source points back at the record the question was generated from.
	// Read-only, used for hinting; scoring never consults it.
	Source *pool.DrugRecord
}

// Verdict is the outcome of evaluating one answer.
type Verdict struct {
	// Correct reports whether the input matched an accepted answer.
	Correct bool

	// Revealed is true when the student gave up with the reveal sentinel.
	// Always scored incorrect, but displayed as "revealed" not "wrong".
	Revealed bool
}
