package quizgen

import "testing"

func shortQuestion(family Family, answers ...string) *Question {
	return &Question{
		Family:  family,
		Format:  FormatShort,
		Answers: answers,
	}
}

func TestCheckAnswer_EmptyInput(t *testing.T) {
	q := shortQuestion(FamilyNaming, "lisinopril")
	v := CheckAnswer("   ", q)
	if v.Correct || v.Revealed {
		t.Errorf("CheckAnswer(blank) = %+v, want zero verdict", v)
	}
}

func TestCheckAnswer_RevealSentinel(t *testing.T) {
	q := shortQuestion(FamilyNaming, "reveal")
	for _, in := range []string{"reveal", "REVEAL", " Reveal "} {
		v := CheckAnswer(in, q)
		if !v.Revealed {
			t.Errorf("CheckAnswer(%q).Revealed = false, want true", in)
		}
		if v.Correct {
			t.Errorf("CheckAnswer(%q).Correct = true, want false even when the answer is the sentinel", in)
		}
	}
}

func TestCheckAnswer_NamingAliases(t *testing.T) {
	q := shortQuestion(FamilyNaming, "Prinivil / Zestril")
	for _, in := range []string{"Prinivil", "zestril", "ZESTRIL"} {
		if !CheckAnswer(in, q).Correct {
			t.Errorf("CheckAnswer(%q) not correct, want alias match", in)
		}
	}
	if CheckAnswer("losartan", q).Correct {
		t.Error("CheckAnswer(losartan) correct, want incorrect")
	}
}

func TestCheckAnswer_AnyOfList(t *testing.T) {
	q := shortQuestion(FamilyIdentity, "nausea, vomiting")
	if !CheckAnswer("vomiting", q).Correct {
		t.Error("expected any single list member to be accepted")
	}
	if CheckAnswer("diarrhea", q).Correct {
		t.Error("CheckAnswer(diarrhea) correct, want incorrect")
	}
}

func TestCheckAnswer_MultiPartOrderIndependent(t *testing.T) {
	q := shortQuestion(FamilyIdentity, "ACE inhibitor / diuretic")
	for _, in := range []string{
		"ACE inhibitor / diuretic",
		"diuretic / ace inhibitor",
		"diuretic and ACE inhibitor",
	} {
		if !CheckAnswer(in, q).Correct {
			t.Errorf("CheckAnswer(%q) not correct, want order-independent part match", in)
		}
	}
}

func TestCheckAnswer_PartCountMustMatch(t *testing.T) {
	q := shortQuestion(FamilyIdentity, "ACE inhibitor / diuretic")
	for _, in := range []string{"diuretic", "ACE inhibitor / diuretic / beta blocker"} {
		if CheckAnswer(in, q).Correct {
			t.Errorf("CheckAnswer(%q) correct, want incorrect on part count mismatch", in)
		}
	}
}

func TestCheckAnswer_ToleranceWindow(t *testing.T) {
	q := shortQuestion(FamilyIdentity, "5 ± 0.5")
	for _, in := range []string{"5", "5.3", "4.5 mg"} {
		if !CheckAnswer(in, q).Correct {
			t.Errorf("CheckAnswer(%q) not correct, want inside window", in)
		}
	}
	for _, in := range []string{"5.8", "4.4", "about five"} {
		if CheckAnswer(in, q).Correct {
			t.Errorf("CheckAnswer(%q) correct, want outside window", in)
		}
	}
}

func TestCheckAnswer_RangeWindow(t *testing.T) {
	q := shortQuestion(FamilyIdentity, "4.5 - 5.5")
	if !CheckAnswer("5", q).Correct {
		t.Error("CheckAnswer(5) not correct, want inside range")
	}
	if CheckAnswer("4.4", q).Correct {
		t.Error("CheckAnswer(4.4) correct, want below range")
	}
}

func TestCheckAnswer_NumericEquality(t *testing.T) {
	q := shortQuestion(FamilyIdentity, "5 mg")
	for _, in := range []string{"5", "5.0", "5 mg", "5mg"} {
		if !CheckAnswer(in, q).Correct {
			t.Errorf("CheckAnswer(%q) not correct, want numeric equality", in)
		}
	}
	if CheckAnswer("6", q).Correct {
		t.Error("CheckAnswer(6) correct, want incorrect")
	}
}

func TestCheckAnswer_ChoiceByIndex(t *testing.T) {
	q := &Question{
		Format:  FormatChoice,
		Choices: []string{"ARB", "Beta blocker", "ACE inhibitor", "Loop diuretic"},
		Answers: []string{"ACE inhibitor"},
	}
	if !CheckAnswer("3", q).Correct {
		t.Error("CheckAnswer(3) not correct, want 1-based index match")
	}
	if CheckAnswer("1", q).Correct {
		t.Error("CheckAnswer(1) correct, want incorrect option")
	}
	// Out-of-range numbers fall through to a text compare and miss.
	if CheckAnswer("5", q).Correct {
		t.Error("CheckAnswer(5) correct, want incorrect for out-of-range index")
	}
}

func TestCheckAnswer_ChoiceByText(t *testing.T) {
	q := &Question{
		Format:  FormatChoice,
		Choices: []string{"ARB", "ACE inhibitor"},
		Answers: []string{"ACE inhibitor"},
	}
	for _, in := range []string{"ACE inhibitor", "a.c.e. inhibitor", "  ace  inhibitor "} {
		if !CheckAnswer(in, q).Correct {
			t.Errorf("CheckAnswer(%q) not correct, want normalized text match", in)
		}
	}
}
