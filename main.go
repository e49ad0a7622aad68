package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adamspd/timedquiz/bank"
	"github.com/adamspd/timedquiz/db"
	"github.com/adamspd/timedquiz/handlers"
	"github.com/adamspd/timedquiz/history"
	"github.com/adamspd/timedquiz/quiz"
	"github.com/adamspd/timedquiz/session"
	"github.com/adamspd/timedquiz/utils"
	"github.com/joho/godotenv"
)

func main() {
	// Set up logging with timestamps
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	utils.LogStartup("Timed Quiz starting...")

	if err := godotenv.Load(); err != nil {
		utils.LogInfo("No .env file loaded, using environment: %v", err)
	}

	cfg, err := utils.LoadQuizConfig()
	if err != nil {
		log.Fatalf("[FATAL] Invalid configuration: %v", err)
	}
	utils.LogStartup("Port %s, database %s, %v per question, %v attempt budget",
		cfg.Port, cfg.DBPath, cfg.QuestionTime, cfg.AttemptBudget)

	questions := bank.Default()
	if cfg.QuestionBankPath != "" {
		questions, err = bank.Load(cfg.QuestionBankPath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to load question bank: %v", err)
		}
	}
	utils.LogStartup("Question bank %q: %d questions, fingerprint %s",
		questions.Title(), questions.Len(), questions.Fingerprint())

	// Initialize database
	utils.LogStartup("Initializing database connection...")
	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := session.NewManager(ctx, questions, database, quiz.Config{
		QuestionTime:  int(cfg.QuestionTime / time.Second),
		AttemptBudget: int(cfg.AttemptBudget / time.Second),
	}, nil)

	utils.LogStartup("Setting up API routes...")
	router := handlers.NewRouter(sessions, history.NewService(database, time.Local))

	// Create server with timeouts
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.LogStartup("Server ready to accept connections at http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[FATAL] Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	utils.LogShutdown("Received shutdown signal, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogError("Server shutdown error: %v", err)
	}

	sessions.Close()

	if err := database.Close(); err != nil {
		utils.LogError("Error closing database: %v", err)
	} else {
		utils.LogShutdown("Database connection closed successfully")
	}
}
