// Package history lists past attempts for display.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/adamspd/timedquiz/models"
	"github.com/adamspd/timedquiz/utils"
)

const dateLayout = "2006-01-02 15:04:05"

// Store is the read side of attempt storage
type Store interface {
	ListAttempts(ctx context.Context) ([]models.Attempt, error)
	GetAttemptWithAnswers(ctx context.Context, id int64) (*models.AttemptWithAnswers, error)
}

// Entry is one history row
type Entry struct {
	models.Attempt
	DisplayDate  string `json:"display_date"`
	DisplayScore string `json:"display_score"`
	DisplayTime  string `json:"display_time"`
}

// Detail is an attempt with its per-question answers
type Detail struct {
	Entry
	Answers []DetailAnswer `json:"answers"`
}

// DetailAnswer is one stored answer ready for display
type DetailAnswer struct {
	models.AnswerDetail
	Display string `json:"display"`
}

type Service struct {
	store    Store
	location *time.Location
}

// NewService creates a history service rendering dates in loc (local time
// when nil).
func NewService(store Store, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, location: loc}
}

// List reads every attempt once, most recent first
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	attempts, err := s.store.ListAttempts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}

	entries := make([]Entry, 0, len(attempts))
	for _, a := range attempts {
		entries = append(entries, s.entry(a))
	}

	utils.LogInfo("History loaded: %d attempts", len(entries))
	return entries, nil
}

// Detail reads one attempt with its answers
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	a, err := s.store.GetAttemptWithAnswers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("attempt %d: %w", id, err)
	}

	d := &Detail{Entry: s.entry(a.Attempt), Answers: make([]DetailAnswer, 0, len(a.Answers))}
	for _, ans := range a.Answers {
		d.Answers = append(d.Answers, DetailAnswer{AnswerDetail: ans, Display: ans.UserAnswer.Display()})
	}
	return d, nil
}

func (s *Service) entry(a models.Attempt) Entry {
	return Entry{
		Attempt:      a,
		DisplayDate:  a.Date.In(s.location).Format(dateLayout),
		DisplayScore: FormatScore(a.Score),
		DisplayTime:  utils.FormatClock(a.TimeSpentSeconds),
	}
}

// FormatScore renders a score with two decimals and a percent sign
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f%%", score)
}
