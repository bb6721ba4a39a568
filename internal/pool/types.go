package pool

import (
	"encoding/json"
	"strings"
)

// DrugRecord is one quizzable fact unit: a drug's names and classification.
// Records are immutable once loaded; questions hold read-only references
// back to them.
type DrugRecord struct {
	// Generic is the generic (nonproprietary) name, e.g. "lisinopril".
	Generic string `json:"generic"`

	// Brands holds the brand name aliases in source order, e.g.
	// ["Prinivil", "Zestril"]. May be empty for generics-only entries.
	Brands AliasList `json:"brand"`

	// Class is the pharmacologic class, e.g. "ACE inhibitor". Optional.
	Class string `json:"class,omitempty"`

	// Category is the therapeutic category, e.g. "Antihypertensive". Optional.
	Category string `json:"category,omitempty"`

	// Mechanism is the mechanism of action. Optional.
	Mechanism string `json:"moa,omitempty"`

	// Meta scopes the record to a curriculum unit.
	Meta Curriculum `json:"metadata"`
}

// Brand returns the primary (first) brand alias, or "" if none.
func (r DrugRecord) Brand() string {
	if len(r.Brands) == 0 {
		return ""
	}
	return r.Brands[0]
}

// Curriculum tags a record with its place in the course, used to scope
// which records count as new vs review for a generated quiz.
type Curriculum struct {
	Lab   int  `json:"lab"`
	Quiz  int  `json:"quiz"`
	Week  int  `json:"week,omitempty"`
	IsNew bool `json:"is_new"`
}

// AliasList is a multi-alias field that may be authored as an array or a
// slash- or comma-separated string ("Prinivil / Zestril"). Source files mix
// both shapes.
type AliasList []string

func (l *AliasList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = trimNonEmpty(arr)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = SplitAliases(s)
	return nil
}

func (l AliasList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(l))
}

// StringList is a JSON field that may be a single string, an array of
// strings, or a bare number in a few legacy files. Unlike AliasList the
// string form is kept whole: separators inside it carry matching semantics
// (any-of lists, multi-part answers) that the evaluator interprets.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = trimNonEmpty(arr)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s = strings.TrimSpace(s); s != "" {
			*l = StringList{s}
		}
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*l = StringList{num.String()}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string(l))
}

// SplitAliases splits a multi-alias field like "Prinivil / Zestril" or
// "Calan, Verelan" into its individual aliases.
func SplitAliases(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ','
	})
	return trimNonEmpty(parts)
}

func trimNonEmpty(parts []string) []string {
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
