package quiz

import "github.com/adamspd/timedquiz/models"

// Progress markers, one per question
const (
	MarkCurrent = "current"
	MarkDone    = "done"
	MarkPending = "pending"
)

// Option is a labelled choice of a multiple-choice question
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// QuestionView is a question without its correct answer
type QuestionView struct {
	ID      int                 `json:"id"`
	Kind    models.QuestionKind `json:"type"`
	Prompt  string              `json:"question"`
	Options []Option            `json:"options,omitempty"`
}

// Scorecard summarizes a completed attempt
type Scorecard struct {
	Score            float64                 `json:"score"`
	Correct          int                     `json:"correct"`
	Total            int                     `json:"total"`
	TimeSpentSeconds int                     `json:"time_spent_seconds"`
	Results          []models.QuestionResult `json:"results"`
	AttemptID        int64                   `json:"attempt_id,omitempty"`
	Stored           bool                    `json:"stored"`
	StoreError       string                  `json:"store_error,omitempty"`
}

// View is a point-in-time copy of the engine state for rendering
type View struct {
	Title         string        `json:"title"`
	Instructions  []string      `json:"instructions"`
	Completed     bool          `json:"completed"`
	Index         int           `json:"index"`
	Total         int           `json:"total"`
	IsLast        bool          `json:"is_last"`
	TimeRemaining int           `json:"time_remaining"`
	TimeLimit     int           `json:"time_limit"`
	Question      *QuestionView `json:"question,omitempty"`
	Pending       models.Answer `json:"pending"`
	Saved         models.Answer `json:"saved"`
	Feedback      *Feedback     `json:"feedback,omitempty"`
	Progress      []string      `json:"progress"`
	Scorecard     *Scorecard    `json:"scorecard,omitempty"`
}

// Snapshot copies the current state
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := e.bank.Len()
	v := View{
		Title:         e.bank.Title(),
		Instructions:  e.bank.Instructions(),
		Completed:     e.completed,
		Index:         e.current,
		Total:         total,
		IsLast:        e.current == total-1,
		TimeRemaining: e.timeRemaining,
		TimeLimit:     e.cfg.QuestionTime,
		Pending:       e.pending,
		Progress:      make([]string, total),
	}

	for i := range v.Progress {
		switch {
		case i == e.current:
			v.Progress[i] = MarkCurrent
		case i < e.current:
			v.Progress[i] = MarkDone
		default:
			v.Progress[i] = MarkPending
		}
	}

	if e.completed {
		v.Scorecard = &Scorecard{
			Score:            e.score,
			Correct:          e.correct,
			Total:            total,
			TimeSpentSeconds: e.timeSpent,
			Results:          append([]models.QuestionResult(nil), e.results...),
			AttemptID:        e.attemptID,
			Stored:           e.attemptID > 0,
		}
		if e.persistErr != nil {
			v.Scorecard.StoreError = e.persistErr.Error()
		}
		return v
	}

	if saved, ok := e.saved[e.current]; ok {
		v.Saved = saved
	} else {
		v.Saved = models.Unanswered()
	}
	if e.feedback != nil {
		fb := *e.feedback
		v.Feedback = &fb
	}

	q, _ := e.bank.Question(e.current)
	qv := &QuestionView{ID: q.ID, Kind: q.Kind, Prompt: q.Prompt}
	for i, text := range q.Options {
		qv.Options = append(qv.Options, Option{Label: models.OptionLabel(i), Text: text})
	}
	v.Question = qv
	return v
}

// Completed reports whether the attempt has been finalized
func (e *Engine) Completed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completed
}
