package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/adamspd/timedquiz/models"
	"github.com/adamspd/timedquiz/utils"
)

var ErrAttemptNotFound = errors.New("attempt not found")

// SaveAttempt stores an attempt and one answer row per question. Both inserts
// share a transaction so no reader sees an attempt without its answers.
func (db *DB) SaveAttempt(ctx context.Context, rec models.AttemptRecord) (int64, error) {
	utils.LogDB("Saving attempt: score %.1f, %ds, %d answers", rec.Score, rec.TimeSpentSeconds, len(rec.Answers))
	start := time.Now()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		utils.LogError("SaveAttempt failed to begin transaction: %v", err)
		return 0, fmt.Errorf("begin attempt transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO attempts (date, score, time_spent, bank_fingerprint)
		VALUES (?, ?, ?, ?)
	`, time.Now().UTC(), rec.Score, rec.TimeSpentSeconds, rec.BankFingerprint)
	if err != nil {
		utils.LogError("SaveAttempt insert failed: %v (%v)", err, time.Since(start))
		return 0, fmt.Errorf("insert attempt: %w", err)
	}

	attemptID, err := result.LastInsertId()
	if err != nil {
		utils.LogError("Failed to get attempt LastInsertId: %v", err)
		return 0, fmt.Errorf("attempt id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO answers (attempt_id, question_id, user_answer, answer_kind, is_correct)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare answer insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range rec.Answers {
		value, kind := encodeAnswer(a.UserAnswer)
		if _, err := stmt.ExecContext(ctx, attemptID, a.QuestionID, value, kind, a.IsCorrect); err != nil {
			utils.LogError("Failed to insert answer for question %d: %v", a.QuestionID, err)
			return 0, fmt.Errorf("insert answer for question %d: %w", a.QuestionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		utils.LogError("SaveAttempt commit failed: %v", err)
		return 0, fmt.Errorf("commit attempt: %w", err)
	}

	utils.LogDB("Attempt saved with ID %d in %v", attemptID, time.Since(start))
	return attemptID, nil
}

// ListAttempts returns every attempt, most recent first
func (db *DB) ListAttempts(ctx context.Context) ([]models.Attempt, error) {
	utils.LogDB("Executing query: ListAttempts")
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, date, score, time_spent, bank_fingerprint
		FROM attempts ORDER BY date DESC, id DESC
	`)
	if err != nil {
		utils.LogError("ListAttempts query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	attempts := []models.Attempt{}
	for rows.Next() {
		var a models.Attempt
		if err := rows.Scan(&a.ID, &a.Date, &a.Score, &a.TimeSpentSeconds, &a.BankFingerprint); err != nil {
			utils.LogError("Failed to scan attempt row: %v", err)
			return nil, err
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	utils.LogDB("ListAttempts completed: %d attempts in %v", len(attempts), time.Since(start))
	return attempts, nil
}

func (db *DB) GetAttempt(ctx context.Context, id int64) (*models.Attempt, error) {
	utils.LogDB("Executing query: GetAttempt(%d)", id)

	var a models.Attempt
	err := db.QueryRowContext(ctx, `
		SELECT id, date, score, time_spent, bank_fingerprint
		FROM attempts WHERE id = ?
	`, id).Scan(&a.ID, &a.Date, &a.Score, &a.TimeSpentSeconds, &a.BankFingerprint)

	if err == sql.ErrNoRows {
		utils.LogDB("Attempt ID %d not found", id)
		return nil, ErrAttemptNotFound
	}
	if err != nil {
		utils.LogError("GetAttempt(%d) failed: %v", id, err)
		return nil, err
	}
	return &a, nil
}

// ListAnswerDetails returns the stored answers of an attempt in bank order
func (db *DB) ListAnswerDetails(ctx context.Context, attemptID int64) ([]models.AnswerDetail, error) {
	utils.LogDB("Executing query: ListAnswerDetails(%d)", attemptID)
	start := time.Now()

	rows, err := db.QueryContext(ctx, `
		SELECT id, attempt_id, question_id, user_answer, answer_kind, is_correct
		FROM answers WHERE attempt_id = ? ORDER BY id
	`, attemptID)
	if err != nil {
		utils.LogError("ListAnswerDetails query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	details := []models.AnswerDetail{}
	for rows.Next() {
		var d models.AnswerDetail
		var value sql.NullString
		var kind string

		if err := rows.Scan(&d.ID, &d.AttemptID, &d.QuestionID, &value, &kind, &d.IsCorrect); err != nil {
			utils.LogError("Failed to scan answer row: %v", err)
			return nil, err
		}
		d.UserAnswer = decodeAnswer(value, kind)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	utils.LogDB("ListAnswerDetails(%d) completed: %d answers in %v", attemptID, len(details), time.Since(start))
	return details, nil
}

// GetAttemptWithAnswers reads an attempt together with its answers
func (db *DB) GetAttemptWithAnswers(ctx context.Context, id int64) (*models.AttemptWithAnswers, error) {
	attempt, err := db.GetAttempt(ctx, id)
	if err != nil {
		return nil, err
	}
	answers, err := db.ListAnswerDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.AttemptWithAnswers{Attempt: *attempt, Answers: answers}, nil
}

func encodeAnswer(a models.Answer) (interface{}, string) {
	switch a.Kind {
	case models.AnswerText, models.AnswerMalformed:
		return a.Text, string(a.Kind)
	case models.AnswerNumber:
		return strconv.Itoa(a.Number), string(a.Kind)
	default:
		return nil, string(models.AnswerUnanswered)
	}
}

func decodeAnswer(value sql.NullString, kind string) models.Answer {
	if !value.Valid {
		return models.Unanswered()
	}
	switch models.AnswerKind(kind) {
	case models.AnswerText:
		return models.TextAnswer(value.String)
	case models.AnswerNumber:
		n, err := strconv.Atoi(value.String)
		if err != nil {
			utils.LogError("Stored number answer %q does not parse: %v", value.String, err)
			return models.MalformedAnswer(value.String)
		}
		return models.NumberAnswer(n)
	case models.AnswerMalformed:
		return models.MalformedAnswer(value.String)
	default:
		return models.Unanswered()
	}
}
