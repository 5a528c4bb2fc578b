package quiz

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/Sash0G/PlamiItaly/internal/dataset"
	"github.com/Sash0G/PlamiItaly/internal/scorestore"
)

var (
	ErrEmptyPool      = errors.New("question pool is empty")
	ErrNoSession      = errors.New("no active session")
	ErrNothingToRetry = errors.New("nothing to retry")
)

// Session is one presentation of selected questions, consumed at grading.
type Session struct {
	ID      string
	Items   []dataset.Question
	IsRetry bool
	Round   int
}

// ItemView is a question as served to the client: options in display
// order, correct answer withheld.
type ItemView struct {
	ID      string           `json:"id"`
	Text    string           `json:"text"`
	Options []dataset.Option `json:"options"`
}

type SessionView struct {
	ID    string     `json:"id"`
	Retry bool       `json:"retry"`
	Round int        `json:"round"`
	Items []ItemView `json:"items"`
}

type ItemResult struct {
	ID            string           `json:"id"`
	Text          string           `json:"text"`
	Correct       bool             `json:"correct"`
	Selected      dataset.OptionID `json:"selected,omitempty"`
	CorrectOption dataset.Option   `json:"correct_option"`
}

type Result struct {
	CorrectCount int          `json:"correct_count"`
	Total        int          `json:"total"`
	Retry        bool         `json:"retry"`
	WrongCount   int          `json:"wrong_count"`
	Complete     bool         `json:"complete"`
	Items        []ItemResult `json:"items"`
}

// Engine owns the fixed question pool, the single active session and the
// in-memory score record. All state transitions run under one mutex;
// persistence happens whole-record at grading time only. A failing store
// degrades the engine to in-memory scoring rather than breaking the
// session flow.
type Engine struct {
	mu    sync.Mutex
	pool  []dataset.Question
	store scorestore.Store
	rng   *rand.Rand

	scores  ScoreRecord
	current *Session
	wrong   []dataset.Question
	round   int
}

func NewEngine(pool []dataset.Question, store scorestore.Store, rng *rand.Rand) (*Engine, error) {
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	e := &Engine{pool: pool, store: store, rng: rng, scores: ScoreRecord{}}
	scores, err := store.Get(context.Background())
	if err != nil {
		log.Printf("score store unavailable, starting with empty record: %v", err)
	} else {
		e.scores = scores
	}
	return e, nil
}

func (e *Engine) PoolSize() int { return len(e.pool) }

// TrackedCount reports how many pool questions carry a nonzero score.
func (e *Engine) TrackedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, q := range e.pool {
		if e.scores.Get(q.ID) > 0 {
			n++
		}
	}
	return n
}

// Start begins a first-pass session of count questions, clamped to
// [1, pool size]. Any session in flight is abandoned with no score effect.
func (e *Engine) Start(count int) *SessionView {
	e.mu.Lock()
	defer e.mu.Unlock()

	if count < 1 {
		count = 1
	}
	if count > len(e.pool) {
		count = len(e.pool)
	}
	e.round = 1
	e.wrong = nil
	e.current = &Session{
		ID:    uuid.NewString(),
		Items: SelectWeighted(e.rng, e.pool, count, e.scores),
		Round: e.round,
	}
	return e.viewLocked()
}

// Retry begins a session over exactly the items missed in the previous
// grading pass, in their original order. Retry grading never writes
// scores.
func (e *Engine) Retry() (*SessionView, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.wrong) == 0 {
		return nil, ErrNothingToRetry
	}
	e.round++
	e.current = &Session{
		ID:      uuid.NewString(),
		Items:   e.wrong,
		IsRetry: true,
		Round:   e.round,
	}
	e.wrong = nil
	return e.viewLocked(), nil
}

// Submit grades the active session against the supplied answers and
// consumes it. A missing answer is a valid, always-incorrect answer.
// On a first pass the score record is updated per the transition law and
// persisted as a whole; retries leave it untouched.
func (e *Engine) Submit(ctx context.Context, answers map[string]dataset.OptionID) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess := e.current
	if sess == nil {
		return nil, ErrNoSession
	}

	scores := e.scores
	if !sess.IsRetry {
		fresh, err := e.store.Get(ctx)
		if err != nil {
			log.Printf("score store read failed, grading against in-memory record: %v", err)
		} else {
			scores = fresh
		}
	}

	res := &Result{Total: len(sess.Items), Retry: sess.IsRetry}
	var wrong []dataset.Question
	for _, q := range sess.Items {
		selected := answers[q.ID]
		correct := selected == q.Correct

		if !sess.IsRetry {
			scores[q.ID] = NextScore(scores.Get(q.ID), correct)
		}
		if correct {
			res.CorrectCount++
		} else {
			wrong = append(wrong, q)
		}

		opt, _ := q.Option(q.Correct)
		res.Items = append(res.Items, ItemResult{
			ID:            q.ID,
			Text:          q.Text,
			Correct:       correct,
			Selected:      selected,
			CorrectOption: opt,
		})
	}

	if !sess.IsRetry {
		e.scores = scores
		if err := e.store.Put(ctx, scores); err != nil {
			log.Printf("score store write failed, scores held in memory only: %v", err)
		}
	}

	e.current = nil
	e.wrong = wrong
	res.WrongCount = len(wrong)
	res.Complete = len(wrong) == 0
	return res, nil
}

// Reset erases all persisted history. Confirmation is the caller's job.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Delete(ctx); err != nil {
		return err
	}
	e.scores = ScoreRecord{}
	e.current = nil
	e.wrong = nil
	e.round = 0
	return nil
}

// Scores returns a snapshot of the in-memory record.
func (e *Engine) Scores() ScoreRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scores.Clone()
}

func (e *Engine) viewLocked() *SessionView {
	sess := e.current
	view := &SessionView{ID: sess.ID, Retry: sess.IsRetry, Round: sess.Round}
	for _, q := range sess.Items {
		view.Items = append(view.Items, ItemView{
			ID:      q.ID,
			Text:    q.Text,
			Options: ShuffleOptions(e.rng, q),
		})
	}
	return view
}
