// Package quiz runs one attempt over a question bank: navigation, the
// per-question countdown, answer capture and final scoring.
package quiz

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/adamspd/timedquiz/bank"
	"github.com/adamspd/timedquiz/models"
	"github.com/adamspd/timedquiz/utils"
)

var (
	ErrQuizCompleted   = errors.New("quiz already completed")
	ErrNoPendingAnswer = errors.New("no answer entered")
	ErrInvalidOption   = errors.New("answer does not name an option")
)

const (
	DefaultQuestionTime  = 30
	DefaultAttemptBudget = 300
)

// Recorder persists a completed attempt
type Recorder interface {
	SaveAttempt(ctx context.Context, rec models.AttemptRecord) (int64, error)
}

// Config holds the timing rules, in whole seconds
type Config struct {
	QuestionTime  int
	AttemptBudget int
}

// Feedback is shown after an explicit save
type Feedback struct {
	IsCorrect     bool   `json:"is_correct"`
	Message       string `json:"message"`
	CorrectAnswer string `json:"correct_answer"`
}

// Outcome describes what a transition did
type Outcome struct {
	Advanced  bool `json:"advanced"`
	Completed bool `json:"completed"`
	Index     int  `json:"index"`
}

// PersistResult reports the completion write
type PersistResult struct {
	AttemptID int64
	Err       error
}

// Engine is the state machine for a single attempt. All transitions are
// serialized; the tick goroutine and callers share one lock.
type Engine struct {
	mu sync.Mutex

	bank     *bank.Bank
	recorder Recorder
	cfg      Config

	current       int
	timeRemaining int
	pending       models.Answer
	saved         map[int]models.Answer
	feedback      *Feedback

	completed  bool
	score      float64
	correct    int
	timeSpent  int
	results    []models.QuestionResult
	attemptID  int64
	persistErr error

	running   bool
	stop      chan struct{}
	stopOnce  sync.Once
	persisted chan PersistResult
}

// NewEngine creates an engine in InProgress(0) with a fresh time budget
func NewEngine(b *bank.Bank, recorder Recorder, cfg Config) *Engine {
	if cfg.QuestionTime <= 0 {
		cfg.QuestionTime = DefaultQuestionTime
	}
	if cfg.AttemptBudget <= 0 {
		cfg.AttemptBudget = DefaultAttemptBudget
	}
	return &Engine{
		bank:          b,
		recorder:      recorder,
		cfg:           cfg,
		timeRemaining: cfg.QuestionTime,
		pending:       models.Unanswered(),
		saved:         make(map[int]models.Answer),
		stop:          make(chan struct{}),
		persisted:     make(chan PersistResult, 1),
	}
}

// Start begins delivering ticks from t until the engine completes, Stop is
// called or ctx is done. The ticker is stopped when delivery ends.
func (e *Engine) Start(ctx context.Context, t Ticker) {
	e.mu.Lock()
	if e.running || e.completed {
		e.mu.Unlock()
		t.Stop()
		return
	}
	e.running = true
	e.mu.Unlock()

	go e.run(ctx, t)
}

func (e *Engine) run(ctx context.Context, t Ticker) {
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stop:
			return
		case <-t.C():
			out, err := e.Tick()
			if err != nil || out.Completed {
				return
			}
		}
	}
}

// Stop cancels further ticks. It is safe to call more than once.
func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// Persisted receives one result after the completion write finishes
func (e *Engine) Persisted() <-chan PersistResult {
	return e.persisted
}

// SetPendingAnswer replaces the in-progress answer for the current question.
// It never reveals correctness.
func (e *Engine) SetPendingAnswer(a models.Answer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.completed {
		return ErrQuizCompleted
	}

	q, _ := e.bank.Question(e.current)
	normalized, err := normalizeAnswer(q, a)
	if err != nil {
		return err
	}
	e.pending = normalized
	return nil
}

// SetPendingInput is SetPendingAnswer for raw text input
func (e *Engine) SetPendingInput(raw string) error {
	return e.SetPendingAnswer(models.TextAnswer(raw))
}

// SaveAnswer commits the pending answer for the current question and returns
// feedback for it. An empty pending answer is rejected and changes nothing.
func (e *Engine) SaveAnswer() (Feedback, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.completed {
		return Feedback{}, ErrQuizCompleted
	}
	if e.pending.IsEmpty() {
		return Feedback{}, ErrNoPendingAnswer
	}

	q, _ := e.bank.Question(e.current)
	e.saved[e.current] = e.pending
	isCorrect := e.pending.Matches(q.CorrectAnswer)

	fb := Feedback{
		IsCorrect:     isCorrect,
		Message:       "Incorrect",
		CorrectAnswer: q.CorrectAnswer,
	}
	if isCorrect {
		fb.Message = "Correct!"
	}
	e.feedback = &fb
	e.pending = models.Unanswered()

	utils.LogQuiz("Saved answer %q for question %d (correct: %t)", e.saved[e.current].String(), q.ID, isCorrect)
	return fb, nil
}

// Advance moves past the current question, finalizing the attempt on the
// last one.
func (e *Engine) Advance() (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.advanceLocked()
}

// Retreat goes back one question. It does not restore the answer previously
// chosen there.
func (e *Engine) Retreat() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.completed {
		return ErrQuizCompleted
	}
	if e.current == 0 {
		return nil
	}
	e.current--
	e.timeRemaining = e.cfg.QuestionTime
	e.feedback = nil
	return nil
}

// Tick counts the current question down by one second and forces Advance
// when it runs out.
func (e *Engine) Tick() (Outcome, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.completed {
		return Outcome{Completed: true, Index: e.current}, ErrQuizCompleted
	}
	if e.timeRemaining > 0 {
		e.timeRemaining--
	}
	if e.timeRemaining > 0 {
		return Outcome{Index: e.current}, nil
	}

	q, _ := e.bank.Question(e.current)
	utils.LogQuiz("Time is up on question %d", q.ID)
	return e.advanceLocked()
}

func (e *Engine) advanceLocked() (Outcome, error) {
	if e.completed {
		return Outcome{Completed: true, Index: e.current}, ErrQuizCompleted
	}

	if !e.pending.IsEmpty() {
		e.saved[e.current] = e.pending
		e.pending = models.Unanswered()
	}

	if e.current == e.bank.Len()-1 {
		e.finalizeLocked()
		return Outcome{Advanced: true, Completed: true, Index: e.current}, nil
	}

	e.current++
	e.timeRemaining = e.cfg.QuestionTime
	e.feedback = nil
	return Outcome{Advanced: true, Index: e.current}, nil
}

// finalizeLocked scores every question from the committed answers. This is
// the only scoring pass.
func (e *Engine) finalizeLocked() {
	questions := e.bank.Questions()
	results := make([]models.QuestionResult, 0, len(questions))
	records := make([]models.AnswerRecord, 0, len(questions))
	correct := 0

	for i, q := range questions {
		a, ok := e.saved[i]
		if !ok {
			a = models.Unanswered()
		}
		isCorrect := a.Matches(q.CorrectAnswer)
		if isCorrect {
			correct++
		}
		results = append(results, models.QuestionResult{
			QuestionID:    q.ID,
			Question:      q.Prompt,
			UserAnswer:    a,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
		})
		records = append(records, models.AnswerRecord{
			QuestionID: q.ID,
			UserAnswer: a,
			IsCorrect:  isCorrect,
		})
	}

	e.results = results
	e.correct = correct
	e.score = 100 * float64(correct) / float64(len(questions))
	e.timeSpent = e.cfg.AttemptBudget - e.timeRemaining
	if e.timeSpent < 0 {
		e.timeSpent = 0
	}
	e.completed = true
	e.feedback = nil
	e.Stop()

	utils.LogQuiz("Attempt completed: %d/%d correct (%.1f%%), %ds", correct, len(questions), e.score, e.timeSpent)

	rec := models.AttemptRecord{
		Score:            e.score,
		TimeSpentSeconds: e.timeSpent,
		BankFingerprint:  e.bank.Fingerprint(),
		Answers:          records,
	}
	go e.persist(rec)
}

func (e *Engine) persist(rec models.AttemptRecord) {
	var res PersistResult
	if e.recorder == nil {
		utils.LogQuiz("No recorder configured, attempt not stored")
	} else {
		start := time.Now()
		res.AttemptID, res.Err = e.recorder.SaveAttempt(context.Background(), rec)
		if res.Err != nil {
			utils.LogError("Failed to store attempt: %v", res.Err)
		} else {
			utils.LogQuiz("Stored attempt %d in %v", res.AttemptID, time.Since(start))
		}
	}

	e.mu.Lock()
	e.attemptID = res.AttemptID
	e.persistErr = res.Err
	e.mu.Unlock()

	e.persisted <- res
}

func normalizeAnswer(q models.Question, a models.Answer) (models.Answer, error) {
	if a.Kind == models.AnswerUnanswered {
		return a, nil
	}

	switch q.Kind {
	case models.KindMultipleChoice:
		if a.Kind != models.AnswerText {
			return models.Answer{}, ErrInvalidOption
		}
		if a.Text == "" {
			return models.Unanswered(), nil
		}
		idx := models.OptionIndex(a.Text)
		if idx < 0 || idx >= len(q.Options) {
			return models.Answer{}, ErrInvalidOption
		}
		return a, nil
	case models.KindInteger:
		if a.Kind == models.AnswerText {
			return models.ParseNumberAnswer(a.Text), nil
		}
		return a, nil
	default:
		return a, nil
	}
}
