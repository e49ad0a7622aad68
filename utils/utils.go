package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/adamspd/timedquiz/models"
)

// Environment utilities
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		LogError("Ignoring non-integer %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

// LoadQuizConfig loads the service configuration from environment
func LoadQuizConfig() (*models.QuizConfig, error) {
	questionSeconds := GetEnvInt("QUESTION_TIME_LIMIT", 30)
	budgetSeconds := GetEnvInt("ATTEMPT_TIME_BUDGET", 300)

	if questionSeconds <= 0 {
		return nil, fmt.Errorf("QUESTION_TIME_LIMIT must be positive, got %d", questionSeconds)
	}
	if budgetSeconds <= 0 {
		return nil, fmt.Errorf("ATTEMPT_TIME_BUDGET must be positive, got %d", budgetSeconds)
	}

	return &models.QuizConfig{
		Port:             GetEnvOrDefault("PORT", "8043"),
		DBPath:           GetEnvOrDefault("DB_PATH", "./quiz.db"),
		QuestionBankPath: GetEnvOrDefault("QUESTION_BANK_PATH", ""),
		QuestionTime:     time.Duration(questionSeconds) * time.Second,
		AttemptBudget:    time.Duration(budgetSeconds) * time.Second,
	}, nil
}

// FormatClock renders seconds as m:ss
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
