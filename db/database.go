package db

import (
	"database/sql"
	"fmt"

	"github.com/adamspd/timedquiz/utils"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func InitDB(dbPath string) (*DB, error) {
	utils.LogStartup("Initializing database at: %s", dbPath)

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		utils.LogError("Failed to open database: %v", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		utils.LogError("Failed to ping database: %v", err)
		db.Close()
		return nil, err
	}

	// A single connection keeps ":memory:" databases shared and serializes
	// writers on the file.
	db.SetMaxOpenConns(1)

	utils.LogStartup("Database connection established")

	if err := createTables(db); err != nil {
		utils.LogError("Failed to create tables: %v", err)
		db.Close()
		return nil, err
	}

	utils.LogStartup("Database tables initialized successfully")
	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		// One row per completed attempt
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date DATETIME NOT NULL,
			score REAL NOT NULL,
			time_spent INTEGER NOT NULL,
			bank_fingerprint TEXT NOT NULL DEFAULT ''
		)`,

		// One row per question of an attempt, in bank order. attempt_id is
		// not declared as a foreign key.
		`CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			attempt_id INTEGER NOT NULL,
			question_id INTEGER NOT NULL,
			user_answer TEXT,
			answer_kind TEXT NOT NULL DEFAULT 'unanswered',
			is_correct BOOLEAN NOT NULL
		)`,
	}

	for i, query := range queries {
		utils.LogDB("Creating table %d/%d", i+1, len(queries))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_attempts_date ON attempts(date)",
		"CREATE INDEX IF NOT EXISTS idx_answers_attempt_id ON answers(attempt_id)",
	}

	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			utils.LogDB("Failed to create index (non-fatal): %v", err)
		}
	}

	return nil
}
