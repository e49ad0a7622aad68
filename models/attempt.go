package models

import "time"

// Attempt is one completed run through the question bank
type Attempt struct {
	ID               int64     `json:"id"`
	Date             time.Time `json:"date"`
	Score            float64   `json:"score"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	BankFingerprint  string    `json:"bank_fingerprint,omitempty"`
}

// AnswerDetail is the stored answer to one question of an attempt
type AnswerDetail struct {
	ID         int64  `json:"id"`
	AttemptID  int64  `json:"attempt_id"`
	QuestionID int    `json:"question_id"`
	UserAnswer Answer `json:"user_answer"`
	IsCorrect  bool   `json:"is_correct"`
}

// AnswerRecord is what the engine hands to storage for each question
type AnswerRecord struct {
	QuestionID int
	UserAnswer Answer
	IsCorrect  bool
}

// AttemptRecord holds everything written when an attempt completes
type AttemptRecord struct {
	Score            float64
	TimeSpentSeconds int
	BankFingerprint  string
	Answers          []AnswerRecord
}

// AttemptWithAnswers is an attempt plus its stored answers
type AttemptWithAnswers struct {
	Attempt
	Answers []AnswerDetail `json:"answers"`
}
