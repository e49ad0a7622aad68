package models

import "time"

// QuizConfig holds the service configuration
type QuizConfig struct {
	Port             string
	DBPath           string
	QuestionBankPath string
	QuestionTime     time.Duration
	AttemptBudget    time.Duration
}
