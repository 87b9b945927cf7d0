package service

import (
	"context"
	"errors"

	"alcyxob/fitplan/internal/metrics"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

var (
	ErrInvalidSessionID = errors.New("invalid session id")
)

// DefaultSessionCacheSize bounds the number of sessions kept in memory.
const DefaultSessionCacheSize = 10000

// SessionManager creates sessions and reopens them by id.
type SessionManager interface {
	Create(ctx context.Context) (*Session, error)
	// Open returns the cached session or rebuilds it from the snapshot store.
	Open(ctx context.Context, id string) (*Session, error)
	// Forget drops a session from the cache; its snapshots stay in the store.
	Forget(id string)
}

type sessionManager struct {
	deps      SessionDeps
	listeners []Listener

	// Least recently used sessions are evicted; their snapshots stay in the
	// store and Open rebuilds them.
	sessions *lru.Cache[string, *Session]
}

// NewSessionManager creates a manager caching at most cacheSize sessions
// (DefaultSessionCacheSize when cacheSize <= 0). listeners are attached to
// every session it creates or opens.
func NewSessionManager(deps SessionDeps, cacheSize int, listeners ...Listener) SessionManager {
	if cacheSize <= 0 {
		cacheSize = DefaultSessionCacheSize
	}
	deps = deps.withDefaults()
	logger := deps.Logger
	sessions, err := lru.NewWithEvict(cacheSize, func(id string, _ *Session) {
		logger.Debug("session evicted from cache", zap.String("sessionId", id))
	})
	if err != nil {
		// Only a non-positive size fails, and that was defaulted above.
		panic(err)
	}
	return &sessionManager{
		deps:      deps,
		listeners: listeners,
		sessions:  sessions,
	}
}

func (m *sessionManager) Create(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	s := NewSession(ctx, id, m.deps)
	m.attach(s)
	m.sessions.Add(id, s)

	metrics.SessionsCreated.Inc()
	m.deps.Logger.Info("session created", zap.String("sessionId", id))
	return s, nil
}

// Open loads outside any lock; when two loads of the same id race, the first
// one cached wins and the other is dropped.
func (m *sessionManager) Open(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidSessionID
	}

	if s, ok := m.sessions.Get(id); ok {
		return s, nil
	}
	s := LoadSession(ctx, id, m.deps)
	m.attach(s)
	if prev, ok, _ := m.sessions.PeekOrAdd(id, s); ok {
		return prev, nil
	}
	m.deps.Logger.Debug("session loaded from store", zap.String("sessionId", id))
	return s, nil
}

func (m *sessionManager) Forget(id string) {
	m.sessions.Remove(id)
}

func (m *sessionManager) attach(s *Session) {
	for _, l := range m.listeners {
		s.Subscribe(l)
	}
}
