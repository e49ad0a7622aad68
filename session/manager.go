// Package session owns the quiz attempt currently being taken.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/adamspd/timedquiz/bank"
	"github.com/adamspd/timedquiz/quiz"
	"github.com/adamspd/timedquiz/utils"
	"github.com/google/uuid"
)

// Session is one attempt in progress or just completed
type Session struct {
	ID        string
	Engine    *quiz.Engine
	CreatedAt time.Time
}

// TickerFactory builds the ticker driving a new session's countdown
type TickerFactory func() quiz.Ticker

// Manager keeps exactly one active session per process
type Manager struct {
	ctx       context.Context
	bank      *bank.Bank
	recorder  quiz.Recorder
	cfg       quiz.Config
	newTicker TickerFactory

	mutex   sync.RWMutex
	current *Session
	closed  bool
}

func NewManager(ctx context.Context, b *bank.Bank, recorder quiz.Recorder, cfg quiz.Config, newTicker TickerFactory) *Manager {
	if newTicker == nil {
		newTicker = func() quiz.Ticker { return quiz.NewClockTicker(time.Second) }
	}

	m := &Manager{
		ctx:       ctx,
		bank:      b,
		recorder:  recorder,
		cfg:       cfg,
		newTicker: newTicker,
	}
	m.current = m.startSession()
	return m
}

// Current returns the active session
func (m *Manager) Current() *Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.current
}

// Restart tears down the active session's timer and starts a fresh attempt
func (m *Manager) Restart() *Session {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.current != nil {
		m.current.Engine.Stop()
		utils.LogQuiz("Session %s replaced", m.current.ID)
	}
	if m.closed {
		return m.current
	}
	m.current = m.startSession()
	return m.current
}

// Close stops the active session's timer; later restarts are ignored
func (m *Manager) Close() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.closed = true
	if m.current != nil {
		m.current.Engine.Stop()
		utils.LogShutdown("Stopped session %s", m.current.ID)
	}
}

func (m *Manager) startSession() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Engine:    quiz.NewEngine(m.bank, m.recorder, m.cfg),
		CreatedAt: time.Now(),
	}
	s.Engine.Start(m.ctx, m.newTicker())
	utils.LogQuiz("Started session %s over %d questions", s.ID, m.bank.Len())
	return s
}
