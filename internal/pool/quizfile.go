package pool

// QuizFile is a hand-authored quiz document. It carries either difficulty
// pools (pools.easy, pools.hard, ...) or a flat questions list; older files
// use the flat form.
type QuizFile struct {
	ID        string                    `json:"id,omitempty"`
	Title     string                    `json:"title"`
	Pools     map[string][]PoolQuestion `json:"pools,omitempty"`
	Questions []PoolQuestion            `json:"questions,omitempty"`
}

// PoolQuestion is one pre-authored question record as it appears on disk.
type PoolQuestion struct {
	// Type is "mcq", "tf", or "short".
	Type string `json:"type"`

	Prompt  string     `json:"prompt"`
	Choices []string   `json:"choices,omitempty"`
	Answer  StringList `json:"answer,omitempty"`

	// AnswerText holds accepted free-text answers for "short" questions.
	// Any one of them is a correct response.
	AnswerText StringList `json:"answerText,omitempty"`

	Explain string `json:"explain,omitempty"`

	// Mapping links the question back to the drug record fields it was
	// generated from. Used for hints only, never for scoring.
	Mapping map[string]string `json:"mapping,omitempty"`
}

// PoolFor returns the question list for the given mode. When the file has
// no pools map the flat questions list serves every mode. The second result
// reports whether any questions were found.
func (f *QuizFile) PoolFor(mode string) ([]PoolQuestion, bool) {
	if len(f.Pools) > 0 {
		qs, ok := f.Pools[mode]
		return qs, ok && len(qs) > 0
	}
	return f.Questions, len(f.Questions) > 0
}

// Modes returns the difficulty modes the file provides, in no particular
// order. Flat files report none.
func (f *QuizFile) Modes() []string {
	modes := make([]string, 0, len(f.Pools))
	for m := range f.Pools {
		modes = append(modes, m)
	}
	return modes
}
