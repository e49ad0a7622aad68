package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adamspd/timedquiz/models"
	"github.com/adamspd/timedquiz/quiz"
	"github.com/adamspd/timedquiz/session"
	"github.com/adamspd/timedquiz/utils"
)

type QuizHandlers struct {
	sessions *session.Manager
}

func NewQuizHandlers(sessions *session.Manager) *QuizHandlers {
	return &QuizHandlers{sessions: sessions}
}

// AnswerRequest carries a pending answer: a letter, a number, or numeric text
type AnswerRequest struct {
	Value models.Answer `json:"value"`
}

type QuizResponse struct {
	SessionID string         `json:"session_id"`
	Feedback  *quiz.Feedback `json:"saved_feedback,omitempty"`
	Outcome   *quiz.Outcome  `json:"outcome,omitempty"`
	View      quiz.View      `json:"view"`
}

func (qh *QuizHandlers) HandleQuiz(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s := qh.sessions.Current()
	writeJSON(w, http.StatusOK, QuizResponse{SessionID: s.ID, View: s.Engine.Snapshot()})
}

func (qh *QuizHandlers) SetAnswer(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.LogHTTP("Invalid JSON in answer request: %v", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	s := qh.sessions.Current()
	if err := s.Engine.SetPendingAnswer(req.Value); err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QuizResponse{SessionID: s.ID, View: s.Engine.Snapshot()})
}

func (qh *QuizHandlers) SaveAnswer(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	s := qh.sessions.Current()
	fb, err := s.Engine.SaveAnswer()
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QuizResponse{SessionID: s.ID, Feedback: &fb, View: s.Engine.Snapshot()})
}

func (qh *QuizHandlers) Next(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	s := qh.sessions.Current()
	out, err := s.Engine.Advance()
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QuizResponse{SessionID: s.ID, Outcome: &out, View: s.Engine.Snapshot()})
}

func (qh *QuizHandlers) Previous(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	s := qh.sessions.Current()
	if err := s.Engine.Retreat(); err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QuizResponse{SessionID: s.ID, View: s.Engine.Snapshot()})
}

func (qh *QuizHandlers) Restart(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	s := qh.sessions.Restart()
	writeJSON(w, http.StatusOK, QuizResponse{SessionID: s.ID, View: s.Engine.Snapshot()})
}

func writeQuizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrQuizCompleted):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, quiz.ErrNoPendingAnswer), errors.Is(err, quiz.ErrInvalidOption):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		utils.LogError("Quiz transition failed: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
