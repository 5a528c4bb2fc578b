package quiz_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/Sash0G/PlamiItaly/internal/dataset"
	"github.com/Sash0G/PlamiItaly/internal/quiz"
)

/* ---------------- In-memory fake that satisfies scorestore.Store ---------------- */

type fakeStore struct {
	scores  map[string]int
	puts    int
	deletes int
	getErr  error
	putErr  error
	delErr  error
}

func newFakeStore(initial map[string]int) *fakeStore {
	if initial == nil {
		initial = map[string]int{}
	}
	return &fakeStore{scores: initial}
}

func (s *fakeStore) Get(ctx context.Context) (map[string]int, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	out := make(map[string]int, len(s.scores))
	for k, v := range s.scores {
		out[k] = v
	}
	return out, nil
}

func (s *fakeStore) Put(ctx context.Context, scores map[string]int) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.puts++
	next := make(map[string]int, len(scores))
	for k, v := range scores {
		next[k] = v
	}
	s.scores = next
	return nil
}

func (s *fakeStore) Delete(ctx context.Context) error {
	if s.delErr != nil {
		return s.delErr
	}
	s.deletes++
	s.scores = map[string]int{}
	return nil
}

func threeQuestions() []dataset.Question {
	mk := func(id, text string) dataset.Question {
		return dataset.Question{
			ID:   id,
			Text: text,
			Options: []dataset.Option{
				{ID: "A", Text: "right"}, {ID: "B", Text: "wrong"}, {ID: "C", Text: "also wrong"},
			},
			Correct: "A",
		}
	}
	return []dataset.Question{mk("Q1", "one"), mk("Q2", "two"), mk("Q3", "three")}
}

func newEngine(t *testing.T, store *fakeStore) *quiz.Engine {
	t.Helper()
	eng, err := quiz.NewEngine(threeQuestions(), store, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng
}

/* ---------------- Tests ---------------- */

func TestEngineRejectsEmptyPool(t *testing.T) {
	_, err := quiz.NewEngine(nil, newFakeStore(nil), rand.New(rand.NewSource(1)))
	if !errors.Is(err, quiz.ErrEmptyPool) {
		t.Fatalf("want ErrEmptyPool, got %v", err)
	}
}

func TestFirstPassGradingScenario(t *testing.T) {
	store := newFakeStore(map[string]int{"Q1": 0, "Q2": 1, "Q3": 3})
	eng := newEngine(t, store)

	view := eng.Start(3)
	if view.Retry || view.Round != 1 {
		t.Fatalf("unexpected first-pass view: retry=%v round=%d", view.Retry, view.Round)
	}
	if len(view.Items) != 3 {
		t.Fatalf("want all 3 questions selected, got %d", len(view.Items))
	}
	seen := map[string]bool{}
	for _, it := range view.Items {
		seen[it.ID] = true
	}
	for _, id := range []string{"Q1", "Q2", "Q3"} {
		if !seen[id] {
			t.Fatalf("selection is not a permutation of the pool, missing %s", id)
		}
	}

	// Q1 correct, Q2 wrong, Q3 unanswered (also wrong)
	res, err := eng.Submit(context.Background(), map[string]dataset.OptionID{
		"Q1": "A", "Q2": "B",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.CorrectCount != 1 || res.WrongCount != 2 || res.Complete {
		t.Fatalf("unexpected result: %+v", res)
	}
	want := map[string]int{"Q1": 2, "Q2": 0, "Q3": 1}
	for id, w := range want {
		if store.scores[id] != w {
			t.Errorf("persisted score %s = %d, want %d", id, store.scores[id], w)
		}
	}
	if store.puts != 1 {
		t.Fatalf("want exactly one whole-record write, got %d", store.puts)
	}

	// wrong items keep session order
	var wrongOrder []string
	for _, it := range res.Items {
		if !it.Correct {
			wrongOrder = append(wrongOrder, it.ID)
		}
	}
	retry, err := eng.Retry()
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if !retry.Retry || retry.Round != 2 {
		t.Fatalf("unexpected retry view: %+v", retry)
	}
	if len(retry.Items) != len(wrongOrder) {
		t.Fatalf("retry has %d items, want %d", len(retry.Items), len(wrongOrder))
	}
	for i, it := range retry.Items {
		if it.ID != wrongOrder[i] {
			t.Fatalf("retry item %d = %s, want %s (verbatim wrong items)", i, it.ID, wrongOrder[i])
		}
	}
}

func TestRetryGradingNeverWritesScores(t *testing.T) {
	store := newFakeStore(nil)
	eng := newEngine(t, store)

	eng.Start(3)
	if _, err := eng.Submit(context.Background(), nil); err != nil { // everything wrong
		t.Fatalf("Submit: %v", err)
	}
	snapshot := map[string]int{}
	for k, v := range store.scores {
		snapshot[k] = v
	}
	putsBefore := store.puts

	if _, err := eng.Retry(); err != nil {
		t.Fatalf("Retry: %v", err)
	}
	res, err := eng.Submit(context.Background(), map[string]dataset.OptionID{"Q1": "B"}) // deliberately wrong
	if err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if !res.Retry {
		t.Fatalf("result not flagged as retry")
	}
	if store.puts != putsBefore {
		t.Fatalf("retry grading wrote the store")
	}
	for k, v := range snapshot {
		if store.scores[k] != v {
			t.Fatalf("score %s changed during retry: %d -> %d", k, v, store.scores[k])
		}
	}
	if len(eng.Scores()) != len(snapshot) {
		t.Fatalf("in-memory record changed during retry")
	}
}

func TestRetryUntilComplete(t *testing.T) {
	store := newFakeStore(nil)
	eng := newEngine(t, store)

	eng.Start(2)
	res, _ := eng.Submit(context.Background(), nil)
	for !res.Complete {
		if _, err := eng.Retry(); err != nil {
			t.Fatalf("Retry: %v", err)
		}
		all := map[string]dataset.OptionID{"Q1": "A", "Q2": "A", "Q3": "A"}
		var err error
		res, err = eng.Submit(context.Background(), all)
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	if _, err := eng.Retry(); !errors.Is(err, quiz.ErrNothingToRetry) {
		t.Fatalf("retry after Complete should fail, got %v", err)
	}
}

func TestSubmitWithoutSession(t *testing.T) {
	eng := newEngine(t, newFakeStore(nil))
	if _, err := eng.Submit(context.Background(), nil); !errors.Is(err, quiz.ErrNoSession) {
		t.Fatalf("want ErrNoSession, got %v", err)
	}
}

func TestStartClampsCount(t *testing.T) {
	eng := newEngine(t, newFakeStore(nil))
	if got := len(eng.Start(100).Items); got != 3 {
		t.Fatalf("count above pool size: got %d items, want 3", got)
	}
	if got := len(eng.Start(-5).Items); got != 1 {
		t.Fatalf("count below 1: got %d items, want 1", got)
	}
}

func TestResetClearsHistory(t *testing.T) {
	store := newFakeStore(map[string]int{"Q1": 4})
	eng := newEngine(t, store)

	if err := eng.Reset(context.Background()); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if store.deletes != 1 {
		t.Fatalf("store delete not invoked")
	}
	if len(eng.Scores()) != 0 {
		t.Fatalf("in-memory scores survive reset")
	}
	if eng.TrackedCount() != 0 {
		t.Fatalf("tracked count nonzero after reset")
	}
}

func TestStoreFailureIsSoft(t *testing.T) {
	store := newFakeStore(nil)
	store.getErr = errors.New("store down")
	store.putErr = errors.New("store down")
	eng := newEngine(t, store)

	eng.Start(3)
	res, err := eng.Submit(context.Background(), map[string]dataset.OptionID{"Q1": "A"})
	if err != nil {
		t.Fatalf("grading must survive a dead store: %v", err)
	}
	if res.CorrectCount != 1 {
		t.Fatalf("unexpected result with dead store: %+v", res)
	}
	// scores still advance in memory for this process
	if eng.Scores()["Q1"] != 2 {
		t.Fatalf("in-memory score not updated, got %d", eng.Scores()["Q1"])
	}
}
