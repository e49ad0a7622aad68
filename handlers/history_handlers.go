package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/adamspd/timedquiz/db"
	"github.com/adamspd/timedquiz/history"
	"github.com/adamspd/timedquiz/utils"
)

type HistoryHandlers struct {
	history *history.Service
}

func NewHistoryHandlers(historyService *history.Service) *HistoryHandlers {
	return &HistoryHandlers{history: historyService}
}

func (hh *HistoryHandlers) ListAttempts(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	entries, err := hh.history.List(r.Context())
	if err != nil {
		utils.LogError("Failed to load history: %v", err)
		http.Error(w, "Failed to load history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"attempts": entries,
		"count":    len(entries),
	})
}

func (hh *HistoryHandlers) GetAttempt(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/history/")
	id, err := strconv.ParseInt(path, 10, 64)
	if err != nil || id <= 0 {
		utils.LogHTTP("Invalid attempt ID: %s", path)
		http.Error(w, "Invalid attempt ID", http.StatusBadRequest)
		return
	}

	detail, err := hh.history.Detail(r.Context(), id)
	if errors.Is(err, db.ErrAttemptNotFound) {
		http.Error(w, "Attempt not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.LogError("Failed to load attempt %d: %v", id, err)
		http.Error(w, "Failed to load attempt", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}
