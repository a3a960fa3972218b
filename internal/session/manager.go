package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/offstage/linecoach/internal/config"
	"github.com/offstage/linecoach/internal/observe"
	"github.com/offstage/linecoach/pkg/linematch"
)

// Manager owns every live practice session. All exported methods are safe
// for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	eng         *linematch.Engine
	names       *linematch.NameSet
	strict      bool
	subsequence bool
	metrics     *observe.Metrics
}

// ManagerConfig holds the dependencies for a [Manager].
type ManagerConfig struct {
	// Matching tunes the shared engine.
	Matching config.MatchingConfig

	// KnownNames lists script names matched phonetically.
	KnownNames []string

	// Metrics receives session and check instrumentation. When nil, the
	// package-level default instruments are used.
	Metrics *observe.Metrics
}

// NewManager builds a Manager and the engine every session shares.
func NewManager(cfg ManagerConfig) *Manager {
	var opts []linematch.Option
	if cfg.Matching.NameThreshold > 0 {
		opts = append(opts, linematch.WithNameThreshold(cfg.Matching.NameThreshold))
	}
	if cfg.Matching.ErrorRecovery {
		opts = append(opts, linematch.WithErrorRecovery(true))
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}

	return &Manager{
		sessions:    make(map[string]*Session),
		eng:         linematch.New(opts...),
		names:       linematch.NewNameSet(cfg.KnownNames...),
		strict:      cfg.Matching.Strict,
		subsequence: cfg.Matching.Strategy == config.StrategySubsequence,
		metrics:     metrics,
	}
}

// Open creates a new session and returns it. The session stays live until
// [Manager.Close] is called with its ID.
func (m *Manager) Open(ctx context.Context) *Session {
	m.mu.Lock()
	s := &Session{
		id:          uuid.NewString(),
		eng:         m.eng,
		names:       m.names,
		strict:      m.strict,
		subsequence: m.subsequence,
		metrics:     m.metrics,
	}
	m.sessions[s.id] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.metrics.ActiveSessions.Add(ctx, 1)
	slog.Info("session opened", "session_id", s.id, "active", n)
	return s
}

// SetKnownNames replaces the phonetic name list. The new list applies to
// sessions opened after the call; live sessions keep the list they were
// opened with.
func (m *Manager) SetKnownNames(names []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = linematch.NewNameSet(names...)
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Close removes the session with the given ID.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	m.metrics.ActiveSessions.Add(ctx, -1)
	slog.Info("session closed", "session_id", id, "active", n)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
