package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/adamspd/timedquiz/history"
	"github.com/adamspd/timedquiz/session"
	"github.com/adamspd/timedquiz/utils"
)

// API wrapper to hold all handlers
type API struct {
	quizHandlers    *QuizHandlers
	historyHandlers *HistoryHandlers
}

func NewAPI(sessions *session.Manager, historyService *history.Service) *API {
	return &API{
		quizHandlers:    NewQuizHandlers(sessions),
		historyHandlers: NewHistoryHandlers(historyService),
	}
}

func NewRouter(sessions *session.Manager, historyService *history.Service) http.Handler {
	api := NewAPI(sessions, historyService)

	mux := http.NewServeMux()

	mux.HandleFunc("/health", healthCheck)

	// Quiz screen
	mux.HandleFunc("/quiz", loggingMiddleware(api.quizHandlers.HandleQuiz))
	mux.HandleFunc("/quiz/answer", loggingMiddleware(api.quizHandlers.SetAnswer))
	mux.HandleFunc("/quiz/save", loggingMiddleware(api.quizHandlers.SaveAnswer))
	mux.HandleFunc("/quiz/next", loggingMiddleware(api.quizHandlers.Next))
	mux.HandleFunc("/quiz/previous", loggingMiddleware(api.quizHandlers.Previous))
	mux.HandleFunc("/quiz/restart", loggingMiddleware(api.quizHandlers.Restart))

	// History screen
	mux.HandleFunc("/history", loggingMiddleware(api.historyHandlers.ListAttempts))
	mux.HandleFunc("/history/", loggingMiddleware(api.historyHandlers.GetAttempt))

	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		utils.LogError("Failed to encode response: %v", err)
	}
}
