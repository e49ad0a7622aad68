package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/adamspd/timedquiz/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := InitDB(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("Failed to init database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func sampleRecord(score float64) models.AttemptRecord {
	return models.AttemptRecord{
		Score:            score,
		TimeSpentSeconds: 125,
		BankFingerprint:  "abcdef0123456789",
		Answers: []models.AnswerRecord{
			{QuestionID: 1, UserAnswer: models.TextAnswer("B"), IsCorrect: true},
			{QuestionID: 6, UserAnswer: models.NumberAnswer(40), IsCorrect: true},
			{QuestionID: 7, UserAnswer: models.MalformedAnswer("5o"), IsCorrect: false},
			{QuestionID: 8, UserAnswer: models.Unanswered(), IsCorrect: false},
		},
	}
}

func TestSaveAttemptAndReadBack(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	id, err := database.SaveAttempt(ctx, sampleRecord(50))
	if err != nil {
		t.Fatalf("SaveAttempt failed: %v", err)
	}
	if id != 1 {
		t.Errorf("Expected first attempt id 1, got %d", id)
	}

	got, err := database.GetAttemptWithAnswers(ctx, id)
	if err != nil {
		t.Fatalf("GetAttemptWithAnswers failed: %v", err)
	}
	if got.Score != 50 || got.TimeSpentSeconds != 125 || got.BankFingerprint != "abcdef0123456789" {
		t.Errorf("Unexpected attempt: %+v", got.Attempt)
	}
	if got.Date.IsZero() {
		t.Error("Expected attempt date to be set")
	}
	if len(got.Answers) != 4 {
		t.Fatalf("Expected 4 answers, got %d", len(got.Answers))
	}

	testCases := []struct {
		questionID int
		kind       models.AnswerKind
		display    string
		correct    bool
	}{
		{1, models.AnswerText, "B", true},
		{6, models.AnswerNumber, "40", true},
		{7, models.AnswerMalformed, "NaN", false},
		{8, models.AnswerUnanswered, models.NotAnswered, false},
	}
	for i, tc := range testCases {
		d := got.Answers[i]
		if d.AttemptID != id || d.QuestionID != tc.questionID {
			t.Errorf("Answer %d: unexpected ids %+v", i, d)
		}
		if d.UserAnswer.Kind != tc.kind || d.UserAnswer.Display() != tc.display {
			t.Errorf("Answer %d: expected %s %q, got %s %q", i, tc.kind, tc.display, d.UserAnswer.Kind, d.UserAnswer.Display())
		}
		if d.IsCorrect != tc.correct {
			t.Errorf("Answer %d: expected correct=%t", i, tc.correct)
		}
	}
	if got.Answers[2].UserAnswer.Text != "5o" {
		t.Errorf("Expected raw malformed input to be kept, got %q", got.Answers[2].UserAnswer.Text)
	}
}

func TestListAttemptsMostRecentFirst(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	empty, err := database.ListAttempts(ctx)
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no attempts, got %d", len(empty))
	}

	first, _ := database.SaveAttempt(ctx, sampleRecord(30))
	second, _ := database.SaveAttempt(ctx, sampleRecord(60))

	attempts, err := database.ListAttempts(ctx)
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("Expected 2 attempts, got %d", len(attempts))
	}
	if attempts[0].ID != second || attempts[1].ID != first {
		t.Errorf("Expected most recent first, got ids %d, %d", attempts[0].ID, attempts[1].ID)
	}
	if attempts[0].Score != 60 {
		t.Errorf("Expected most recent score 60, got %.1f", attempts[0].Score)
	}
	if attempts[0].Date.Before(attempts[1].Date) {
		t.Error("Dates are not in descending order")
	}
}

func TestGetAttemptNotFound(t *testing.T) {
	database := newTestDB(t)

	if _, err := database.GetAttempt(context.Background(), 42); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("Expected ErrAttemptNotFound, got %v", err)
	}
	if _, err := database.GetAttemptWithAnswers(context.Background(), 42); !errors.Is(err, ErrAttemptNotFound) {
		t.Errorf("Expected ErrAttemptNotFound, got %v", err)
	}
}

func TestSaveAttemptIsAtomic(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	if _, err := database.Exec("DROP TABLE answers"); err != nil {
		t.Fatalf("Failed to drop answers table: %v", err)
	}
	if _, err := database.SaveAttempt(ctx, sampleRecord(10)); err == nil {
		t.Fatal("Expected SaveAttempt to fail without the answers table")
	}

	attempts, err := database.ListAttempts(ctx)
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(attempts) != 0 {
		t.Errorf("Expected the attempt insert to be rolled back, found %d attempts", len(attempts))
	}
}

func TestSaveAttemptHonorsCancelledContext(t *testing.T) {
	database := newTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := database.SaveAttempt(ctx, sampleRecord(10)); err == nil {
		t.Error("Expected error for cancelled context")
	}
}

func TestInitDBIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.db")

	first, err := InitDB(path)
	if err != nil {
		t.Fatalf("First InitDB failed: %v", err)
	}
	if _, err := first.SaveAttempt(context.Background(), sampleRecord(70)); err != nil {
		t.Fatalf("SaveAttempt failed: %v", err)
	}
	first.Close()

	second, err := InitDB(path)
	if err != nil {
		t.Fatalf("Second InitDB failed: %v", err)
	}
	defer second.Close()

	attempts, err := second.ListAttempts(context.Background())
	if err != nil {
		t.Fatalf("ListAttempts failed: %v", err)
	}
	if len(attempts) != 1 || attempts[0].Score != 70 {
		t.Errorf("Expected stored attempt to survive reopen, got %+v", attempts)
	}
}
