package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"pharmlet/internal/pool"
	"pharmlet/internal/quizgen"
	"pharmlet/internal/store"
)

// fakeRepo is an in-memory SessionRepo that counts calls so tests can
// assert persistence happens exactly when it should.
type fakeRepo struct {
	lives      map[store.SessionKey]*store.LiveSessionData
	lastActive *store.SessionKey
	history    []store.HistoryEntry
	review     []store.ReviewEntry

	saveCalls      int
	clearLiveCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{lives: make(map[store.SessionKey]*store.LiveSessionData)}
}

func (r *fakeRepo) SaveLive(_ context.Context, key store.SessionKey, data *store.LiveSessionData) error {
	r.saveCalls++
	r.lives[key] = data
	k := key
	r.lastActive = &k
	return nil
}

func (r *fakeRepo) LoadLive(_ context.Context, key store.SessionKey) (*store.LiveSessionData, error) {
	return r.lives[key], nil
}

func (r *fakeRepo) ClearLive(_ context.Context, key store.SessionKey) error {
	r.clearLiveCalls++
	delete(r.lives, key)
	return nil
}

func (r *fakeRepo) ClearAllLive(_ context.Context) error {
	r.lives = make(map[store.SessionKey]*store.LiveSessionData)
	r.lastActive = nil
	return nil
}

func (r *fakeRepo) LastActive(_ context.Context) (*store.SessionKey, error) {
	return r.lastActive, nil
}

func (r *fakeRepo) AppendHistory(_ context.Context, entry store.HistoryEntry) error {
	r.history = append(r.history, entry)
	return nil
}

func (r *fakeRepo) RecentHistory(_ context.Context, _ int) ([]store.HistoryEntry, error) {
	return r.history, nil
}

func (r *fakeRepo) AppendReview(_ context.Context, entries []store.ReviewEntry) error {
	r.review = append(r.review, entries...)
	return nil
}

func (r *fakeRepo) ReviewQueue(_ context.Context, _ int) ([]store.ReviewEntry, error) {
	return r.review, nil
}

func (r *fakeRepo) ClearReview(_ context.Context) error {
	r.review = nil
	return nil
}

func testRecords() []pool.DrugRecord {
	return []pool.DrugRecord{
		{Generic: "lisinopril", Brands: pool.AliasList{"Prinivil", "Zestril"}, Class: "ACE inhibitor", Category: "Antihypertensive", Mechanism: "inhibits ACE"},
		{Generic: "losartan", Brands: pool.AliasList{"Cozaar"}, Class: "ARB", Category: "Antihypertensive", Mechanism: "blocks angiotensin II receptors"},
		{Generic: "furosemide", Brands: pool.AliasList{"Lasix"}, Class: "Loop diuretic", Category: "Diuretic", Mechanism: "inhibits Na-K-2Cl reabsorption"},
	}
}

func testInput(repo store.SessionRepo) BuildInput {
	return BuildInput{
		Key:     Identity{QuizID: "practice", Mode: "standard"},
		Title:   "Practice",
		Records: testRecords(),
		Seed:    42,
		Repo:    repo,
	}
}

func buildTestSession(t *testing.T, repo store.SessionRepo) *SessionState {
	t.Helper()
	state, err := Build(context.Background(), testInput(repo))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return state
}

// answerAll answers every question, giving the canonical answer when
// correct is true and a guaranteed miss otherwise.
func answerAll(t *testing.T, state *SessionState, correct bool) {
	t.Helper()
	ctx := context.Background()
	for {
		q, _ := state.Current()
		if q == nil {
			t.Fatal("no current question")
		}
		input := q.Answers[0]
		if !correct {
			input = "definitely not this"
		}
		if v := Answer(ctx, state, input); v == nil {
			t.Fatal("Answer returned nil for a fresh question")
		}
		if !Advance(ctx, state) {
			return
		}
	}
}

func TestBuild_GeneratesFromRecords(t *testing.T) {
	state := buildTestSession(t, newFakeRepo())

	if len(state.Questions) != len(testRecords()) {
		t.Errorf("question count = %d, want %d", len(state.Questions), len(testRecords()))
	}
	if state.Phase != PhaseActive {
		t.Errorf("Phase = %v, want PhaseActive", state.Phase)
	}
	if !state.TimerRunning {
		t.Error("TimerRunning = false, want true on a fresh session")
	}
	if state.ID == "" {
		t.Error("session ID is empty")
	}
}

func TestBuild_LimitCapsQuestions(t *testing.T) {
	in := testInput(nil)
	in.Limit = 2
	state, err := Build(context.Background(), in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(state.Questions) != 2 {
		t.Errorf("question count = %d, want 2", len(state.Questions))
	}
}

func TestBuild_EmptyRecordsUnavailable(t *testing.T) {
	in := testInput(nil)
	in.Records = nil
	if _, err := Build(context.Background(), in); !errors.Is(err, pool.ErrContentUnavailable) {
		t.Errorf("err = %v, want ErrContentUnavailable", err)
	}
}

func TestBuild_MissingFileModeUnavailable(t *testing.T) {
	in := testInput(nil)
	in.File = &pool.QuizFile{
		Title: "Cardio",
		Pools: map[string][]pool.PoolQuestion{"easy": {{Type: "short", Prompt: "p", AnswerText: pool.StringList{"a"}}}},
	}
	if _, err := Build(context.Background(), in); !errors.Is(err, pool.ErrContentUnavailable) {
		t.Errorf("err = %v, want ErrContentUnavailable for a file without the requested mode", err)
	}
}

func TestBuild_QueuedTakesPrecedence(t *testing.T) {
	in := testInput(nil)
	in.Queued = []store.PersistedQuestion{
		{Family: "naming", Format: "short", Prompt: "queued one", Answers: []string{"a"}},
		{Family: "naming", Format: "short", Prompt: "queued two", Answers: []string{"b"}},
	}
	state, err := Build(context.Background(), in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(state.Questions) != 2 {
		t.Fatalf("question count = %d, want the 2 queued questions", len(state.Questions))
	}
	for _, q := range state.Questions {
		if q.Prompt != "queued one" && q.Prompt != "queued two" {
			t.Errorf("unexpected prompt %q, want a queued prompt", q.Prompt)
		}
	}
}

func TestBuild_ResumeRestoresProgress(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()

	first := buildTestSession(t, repo)
	q, _ := first.Current()
	if Answer(ctx, first, q.Answers[0]) == nil {
		t.Fatal("Answer returned nil")
	}
	Advance(ctx, first)

	in := testInput(repo)
	in.Resume = true
	second, err := Build(ctx, in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !second.Resumed {
		t.Fatal("Resumed = false, want true")
	}
	if second.Score != 1 {
		t.Errorf("Score = %d, want 1", second.Score)
	}
	if second.Index != 1 {
		t.Errorf("Index = %d, want 1", second.Index)
	}
	if !second.States[0].Answered {
		t.Error("first question lost its answered overlay")
	}
}

func TestBuild_ResumeDiscardsMismatchedSave(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()

	buildTestSession(t, repo) // saves a 3-question live session

	in := testInput(repo)
	in.Resume = true
	in.Limit = 2
	state, err := Build(ctx, in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if state.Resumed {
		t.Error("Resumed = true, want stale save discarded on count mismatch")
	}
	if repo.clearLiveCalls == 0 {
		t.Error("stale live save was not cleared")
	}
	if saved := repo.lives[store.SessionKey{QuizID: "practice", Mode: "standard"}]; saved == nil || len(saved.Questions) != 2 {
		t.Error("fresh session was not saved after discarding the stale one")
	}
}

func TestBuild_ResumeOfCompletedSaveIsDone(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()

	// Persist a fully answered save by hand; completion normally clears
	// the live row, but a crash between answer and advance can leave one.
	first := buildTestSession(t, repo)
	for i := range first.States {
		first.States[i].Answered = true
	}
	saveLive(ctx, first)

	in := testInput(repo)
	in.Resume = true
	second, err := Build(ctx, in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if second.Phase != PhaseDone {
		t.Errorf("Phase = %v, want PhaseDone for a fully answered save", second.Phase)
	}
	if second.TimerRunning {
		t.Error("TimerRunning = true, want stopped")
	}
}

func TestAnswer_ScoringAndStreaks(t *testing.T) {
	ctx := context.Background()
	state := buildTestSession(t, nil)

	q, _ := state.Current()
	if v := Answer(ctx, state, q.Answers[0]); v == nil || !v.Correct {
		t.Fatalf("verdict = %+v, want correct", v)
	}
	if state.Score != 1 || state.Streak != 1 || state.BestStreak != 1 {
		t.Errorf("score/streak/best = %d/%d/%d, want 1/1/1", state.Score, state.Streak, state.BestStreak)
	}

	Advance(ctx, state)
	if v := Answer(ctx, state, "definitely not this"); v == nil || v.Correct {
		t.Fatalf("verdict = %+v, want incorrect", v)
	}
	if state.Score != 1 || state.Streak != 0 || state.BestStreak != 1 {
		t.Errorf("score/streak/best = %d/%d/%d, want 1/0/1", state.Score, state.Streak, state.BestStreak)
	}

	Advance(ctx, state)
	q, _ = state.Current()
	Answer(ctx, state, q.Answers[0])
	if state.Streak != 1 || state.BestStreak != 1 {
		t.Errorf("streak/best = %d/%d, want 1/1 after recovering", state.Streak, state.BestStreak)
	}
}

func TestAnswer_Idempotent(t *testing.T) {
	ctx := context.Background()
	state := buildTestSession(t, nil)

	q, _ := state.Current()
	Answer(ctx, state, q.Answers[0])
	if v := Answer(ctx, state, q.Answers[0]); v != nil {
		t.Errorf("second Answer = %+v, want nil", v)
	}
	if state.Score != 1 {
		t.Errorf("Score = %d, want 1 (double-scored)", state.Score)
	}
}

func TestAnswer_BlankInputIgnored(t *testing.T) {
	state := buildTestSession(t, nil)
	if v := Answer(context.Background(), state, "   "); v != nil {
		t.Errorf("Answer(blank) = %+v, want nil", v)
	}
	if state.States[0].Answered {
		t.Error("blank input marked the question answered")
	}
}

func TestAnswer_RevealScoresIncorrect(t *testing.T) {
	ctx := context.Background()
	state := buildTestSession(t, nil)
	state.Streak = 3

	v := Answer(ctx, state, "reveal")
	if v == nil || !v.Revealed || v.Correct {
		t.Fatalf("verdict = %+v, want revealed and incorrect", v)
	}
	if state.Streak != 0 {
		t.Errorf("Streak = %d, want 0 after revealing", state.Streak)
	}
	if !state.States[0].Revealed {
		t.Error("overlay Revealed = false, want true")
	}
}

func TestAdvance_CompletionPersistsOnce(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	state := buildTestSession(t, repo)

	answerAll(t, state, false)

	if state.Phase != PhaseDone {
		t.Fatalf("Phase = %v, want PhaseDone", state.Phase)
	}
	if state.TimerRunning {
		t.Error("TimerRunning = true, want stopped on completion")
	}
	if len(repo.history) != 1 {
		t.Fatalf("history entries = %d, want 1", len(repo.history))
	}
	if got := repo.history[0]; got.Score != 0 || got.Total != len(state.Questions) {
		t.Errorf("history entry = %d/%d, want 0/%d", got.Score, got.Total, len(state.Questions))
	}
	if len(repo.review) != len(state.Questions) {
		t.Errorf("review queue = %d entries, want every miss (%d)", len(repo.review), len(state.Questions))
	}
	if len(repo.lives) != 0 {
		t.Error("live save survived completion")
	}

	// Advancing again must not double-record.
	if Advance(ctx, state) {
		t.Error("Advance after completion = true, want false")
	}
	if len(repo.history) != 1 {
		t.Errorf("history entries = %d after repeat Advance, want 1", len(repo.history))
	}
}

func TestAdvance_AllCorrectQueuesNothing(t *testing.T) {
	repo := newFakeRepo()
	state := buildTestSession(t, repo)

	answerAll(t, state, true)

	if len(repo.review) != 0 {
		t.Errorf("review queue = %d entries, want 0 for a perfect run", len(repo.review))
	}
	if repo.history[0].Score != len(state.Questions) {
		t.Errorf("history score = %d, want %d", repo.history[0].Score, len(state.Questions))
	}
}

func TestRetreat_ClampsAtFirst(t *testing.T) {
	ctx := context.Background()
	state := buildTestSession(t, nil)

	if Retreat(ctx, state) {
		t.Error("Retreat at index 0 = true, want false")
	}
	Advance(ctx, state)
	if !Retreat(ctx, state) || state.Index != 0 {
		t.Errorf("Index = %d after Retreat, want 0", state.Index)
	}
}

func TestToggleMark(t *testing.T) {
	ctx := context.Background()
	state := buildTestSession(t, nil)

	ToggleMark(ctx, state)
	if !state.States[0].Marked {
		t.Error("Marked = false after toggle, want true")
	}
	if got := state.Marked(); len(got) != 1 || got[0] != 0 {
		t.Errorf("Marked() = %v, want [0]", got)
	}
	ToggleMark(ctx, state)
	if state.States[0].Marked {
		t.Error("Marked = true after second toggle, want false")
	}
}

func TestEnterReview_RequiresDone(t *testing.T) {
	ctx := context.Background()
	state := buildTestSession(t, newFakeRepo())

	if EnterReview(state) {
		t.Error("EnterReview on an active session = true, want false")
	}

	answerAll(t, state, true)
	state.Index = len(state.Questions) - 1

	if !EnterReview(state) {
		t.Fatal("EnterReview on a done session = false, want true")
	}
	if state.Index != 0 {
		t.Errorf("Index = %d entering review, want 0", state.Index)
	}

	// Review is a read-only walkthrough: no scoring, no re-completion.
	if v := Answer(ctx, state, "anything"); v != nil {
		t.Errorf("Answer in review = %+v, want nil", v)
	}
	state.Index = len(state.Questions) - 1
	if Advance(ctx, state) {
		t.Error("Advance past the last review question = true, want false")
	}

	ExitReview(state)
	if state.Review {
		t.Error("Review = true after ExitReview")
	}
}

func TestRestart_DealsAFreshSession(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	state := buildTestSession(t, repo)

	answerAll(t, state, true)

	fresh, err := Restart(ctx, state)
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if fresh.Score != 0 || fresh.Answered() != 0 {
		t.Errorf("fresh session score/answered = %d/%d, want 0/0", fresh.Score, fresh.Answered())
	}
	if fresh.Phase != PhaseActive {
		t.Errorf("Phase = %v, want PhaseActive", fresh.Phase)
	}
	if fresh.ID == state.ID {
		t.Error("restarted session reuses the old ID")
	}
}

func TestRestart_RerollsSeededRuns(t *testing.T) {
	state := buildTestSession(t, nil)

	fresh, err := Restart(context.Background(), state)
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if fresh.input.Seed == 42 || fresh.input.Seed == 0 {
		t.Errorf("restarted seed = %d, want a fresh non-zero seed", fresh.input.Seed)
	}
}

func TestTick_FlushesPeriodically(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	state := buildTestSession(t, repo)

	saves := repo.saveCalls
	for i := 0; i < liveSaveInterval; i++ {
		Tick(ctx, state)
	}
	if state.ElapsedSeconds != liveSaveInterval {
		t.Errorf("ElapsedSeconds = %d, want %d", state.ElapsedSeconds, liveSaveInterval)
	}
	if repo.saveCalls != saves+1 {
		t.Errorf("saveCalls = %d, want exactly one flush per interval", repo.saveCalls-saves)
	}
}

func TestTick_IgnoredWhilePaused(t *testing.T) {
	ctx := context.Background()
	state := buildTestSession(t, nil)

	Pause(ctx, state)
	Tick(ctx, state)
	if state.ElapsedSeconds != 0 {
		t.Errorf("ElapsedSeconds = %d while paused, want 0", state.ElapsedSeconds)
	}

	Resume(state)
	Tick(ctx, state)
	if state.ElapsedSeconds != 1 {
		t.Errorf("ElapsedSeconds = %d after resume, want 1", state.ElapsedSeconds)
	}
}

func TestHot_RequiresVolumeAndAccuracy(t *testing.T) {
	state := &SessionState{
		Questions: make([]quizgen.Question, 10),
		States:    make([]QuestionState, 10),
	}

	for i := 0; i < 4; i++ {
		state.States[i].Answered = true
		state.States[i].Correct = true
	}
	state.Score = 4
	if state.Hot() {
		t.Error("Hot = true with only 4 answered, want false")
	}

	state.States[4].Answered = true
	state.States[4].Correct = true
	state.Score = 5
	if !state.Hot() {
		t.Error("Hot = false at 5/5, want true")
	}

	state.States[5].Answered = true
	state.States[6].Answered = true
	if state.Hot() {
		t.Error("Hot = true at 5/7 (71%), want false")
	}
}

func TestBuildSummary(t *testing.T) {
	repo := newFakeRepo()
	state := buildTestSession(t, repo)

	ToggleMark(context.Background(), state)
	answerAll(t, state, false)
	state.ElapsedSeconds = 95

	s := BuildSummary(state)
	if s.Score != 0 || s.Total != len(state.Questions) {
		t.Errorf("summary = %d/%d, want 0/%d", s.Score, s.Total, len(state.Questions))
	}
	if s.Missed != len(state.Questions) {
		t.Errorf("Missed = %d, want %d", s.Missed, len(state.Questions))
	}
	if s.Marked != 1 {
		t.Errorf("Marked = %d, want 1", s.Marked)
	}
	if s.Duration != 95*time.Second {
		t.Errorf("Duration = %v, want 95s", s.Duration)
	}
}

func TestBuild_ResumeKeepsHintSource(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()

	first := buildTestSession(t, repo)
	for i := range first.Questions {
		if first.Questions[i].Source == nil {
			t.Fatalf("generated question %d has no source record", i)
		}
	}

	in := testInput(repo)
	in.Resume = true
	second, err := Build(ctx, in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !second.Resumed {
		t.Fatal("Resumed = false, want true")
	}

	for i := range second.Questions {
		rq := &second.Questions[i]
		if rq.Source == nil {
			t.Fatalf("resumed question %d lost its source record", i)
		}
		if got, want := rq.Source.Generic, first.Questions[i].Source.Generic; got != want {
			t.Errorf("question %d source generic = %q after resume, want %q", i, got, want)
		}
		if got, want := quizgen.Hint(rq), quizgen.Hint(&first.Questions[i]); got != want {
			t.Errorf("question %d hint = %q after resume, want %q", i, got, want)
		}
	}
}
