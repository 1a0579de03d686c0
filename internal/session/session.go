// Package session owns per-conversation state: the bounded LLM-facing
// memory, the UI-facing transcript, and session metadata with expiry
// detection. State is process-local and single-writer per session.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"wrench/internal/llm"
)

// Session holds conversation metadata. The id stays fixed for the manager's
// lifetime; Clear resets history but never issues a new id.
type Session struct {
	ID           string
	CreatedAt    time.Time
	LastActivity time.Time
	MessageCount int
}

// Info is a read-only snapshot for display.
type Info struct {
	ID           string
	MessageCount int
	CreatedAt    time.Time
	LastActivity time.Time
	Duration     string
}

// Manager maintains one session's transcript and memory. The memory (what
// gets replayed to the LLM) is pruned oldest-first to maxHistory; the
// transcript keeps every message for display.
type Manager struct {
	maxHistory int
	expiry     time.Duration
	logger     *slog.Logger

	// now is swapped in tests to simulate the passage of time.
	now func() time.Time

	session    *Session
	transcript []llm.Message
	memory     []llm.Message
}

// NewManager creates a manager with the given memory bound and idle expiry.
func NewManager(maxHistory int, expiry time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		maxHistory: maxHistory,
		expiry:     expiry,
		logger:     logger.With("component", "session"),
		now:        time.Now,
	}
}

// Initialize creates session state if absent. Idempotent; safe to call on
// every request.
func (m *Manager) Initialize() {
	if m.session != nil {
		return
	}
	now := m.now()
	m.session = &Session{
		ID:           uuid.NewString(),
		CreatedAt:    now,
		LastActivity: now,
	}
	m.transcript = nil
	m.memory = nil
	m.logger.Info("session initialized", "session_id", m.session.ID)
}

// AddUserMessage appends a user message to both the transcript and the
// LLM-facing memory.
func (m *Manager) AddUserMessage(content string) {
	m.append(llm.Message{Role: llm.RoleUser, Content: content})
}

// AddAssistantMessage appends an assistant message to both the transcript
// and the LLM-facing memory.
func (m *Manager) AddAssistantMessage(content string) {
	m.append(llm.Message{Role: llm.RoleAssistant, Content: content})
}

func (m *Manager) append(msg llm.Message) {
	m.Initialize()
	m.transcript = append(m.transcript, msg)
	m.memory = append(m.memory, msg)

	m.session.LastActivity = m.now()
	m.session.MessageCount++

	m.prune()
}

// prune drops exactly the oldest excess messages so the memory never exceeds
// maxHistory. Newest messages are never truncated.
func (m *Manager) prune() {
	if len(m.memory) <= m.maxHistory {
		return
	}
	excess := len(m.memory) - m.maxHistory
	m.memory = append([]llm.Message(nil), m.memory[excess:]...)
	m.logger.Info("pruned conversation memory", "dropped", excess)
}

// History returns a copy of the LLM-facing memory.
func (m *Manager) History() []llm.Message {
	return append([]llm.Message(nil), m.memory...)
}

// Transcript returns a copy of the full display transcript.
func (m *Manager) Transcript() []llm.Message {
	return append([]llm.Message(nil), m.transcript...)
}

// IsExpired reports whether the session has been idle past the expiry
// window. It never mutates state; callers decide whether to reset.
func (m *Manager) IsExpired() bool {
	if m.session == nil {
		return false
	}
	return m.now().Sub(m.session.LastActivity) > m.expiry
}

// Clear empties the transcript and memory and resets the message count. The
// session id is deliberately kept: same session, fresh history.
func (m *Manager) Clear() {
	if m.session == nil {
		return
	}
	m.transcript = nil
	m.memory = nil
	m.session.MessageCount = 0
	m.logger.Info("conversation cleared", "session_id", m.session.ID)
}

// Reset discards the session entirely and starts a fresh one with a new id.
// Used when an expired session is detected.
func (m *Manager) Reset() {
	if m.session != nil {
		m.logger.Info("session reset", "session_id", m.session.ID)
	}
	m.session = nil
	m.transcript = nil
	m.memory = nil
	m.Initialize()
}

// Info returns a read-only view of the session. It never mutates.
func (m *Manager) Info() Info {
	if m.session == nil {
		return Info{}
	}
	d := m.now().Sub(m.session.CreatedAt)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return Info{
		ID:           m.session.ID,
		MessageCount: m.session.MessageCount,
		CreatedAt:    m.session.CreatedAt,
		LastActivity: m.session.LastActivity,
		Duration:     fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds),
	}
}
