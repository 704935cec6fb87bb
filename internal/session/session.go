// Package session tracks user sessions and the append-only interaction log.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/veritas/internal/logging"
	"github.com/ppiankov/veritas/internal/model"
	"github.com/ppiankov/veritas/internal/util"
)

const (
	// DefaultUserID is recorded for sessions started from the command line
	DefaultUserID = "cli-user"

	// UnknownVerdict is logged when an interaction has no verdict
	UnknownVerdict = "UNKNOWN"

	maxQueryRunes     = 200
	maxProcessedRunes = 500
)

// Recorder persists sessions and interactions
type Recorder interface {
	CreateSession(ctx context.Context, session model.Session) error
	RecordInteraction(ctx context.Context, interaction model.Interaction) error
}

// NewID builds a session id of the form web-YYYYMMDD-HHMMSS-xxxxxxxx
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("web-%s-%s", now.Format("20060102-150405"), suffix)
}

// Manager hands out sessions and keeps the active ones in a registry
type Manager struct {
	registry *gocache.Cache
	recorder Recorder
	logger   logging.Logger
	now      func() time.Time
}

// NewManager creates a manager; recorder may be nil when nothing is persisted
func NewManager(recorder Recorder, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	// active sessions expire after an hour idle, purged every 10 minutes
	return &Manager{
		registry: gocache.New(time.Hour, 10*time.Minute),
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// Start opens a new session for userID. Persistence failures are logged;
// the session is usable either way.
func (m *Manager) Start(ctx context.Context, userID string) model.Session {
	if strings.TrimSpace(userID) == "" {
		userID = DefaultUserID
	}
	now := m.now()
	s := model.Session{
		ID:        NewID(now),
		UserID:    userID,
		CreatedAt: now.UTC(),
	}
	m.registry.Set(s.ID, s, gocache.DefaultExpiration)

	if m.recorder != nil {
		if err := m.recorder.CreateSession(ctx, s); err != nil {
			m.logger.Warn("session", "failed to persist session", map[string]interface{}{
				"session_id": s.ID,
				"error":      err,
			})
		}
	}
	m.logger.Debug("session", "session started", map[string]interface{}{"session_id": s.ID, "user_id": userID})
	return s
}

// Get returns an active session and refreshes its expiry
func (m *Manager) Get(id string) (model.Session, bool) {
	x, found := m.registry.Get(id)
	if !found {
		return model.Session{}, false
	}
	s := x.(model.Session)
	m.registry.Set(id, s, gocache.DefaultExpiration)
	return s, true
}

// End drops a session from the registry
func (m *Manager) End(id string) {
	m.registry.Delete(id)
}

// Active returns the number of registered sessions
func (m *Manager) Active() int {
	return m.registry.ItemCount()
}

// Log is the append-only interaction log. Record never fails the caller.
type Log struct {
	recorder Recorder
	logger   logging.Logger
	now      func() time.Time
}

// NewLog creates an interaction log; a nil recorder makes Record a no-op
func NewLog(recorder Recorder, logger logging.Logger) *Log {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Log{recorder: recorder, logger: logger, now: time.Now}
}

// Record appends one interaction. Query is truncated to 200 runes and the
// processed input to 500; a blank verdict is stored as UNKNOWN.
func (l *Log) Record(ctx context.Context, sessionID, query, processed, verdict string) {
	if l == nil || l.recorder == nil {
		return
	}
	if strings.TrimSpace(verdict) == "" {
		verdict = UnknownVerdict
	}

	in := model.Interaction{
		SessionID:      sessionID,
		Query:          util.TruncateRunes(query, maxQueryRunes),
		ProcessedInput: util.TruncateRunes(processed, maxProcessedRunes),
		Verdict:        verdict,
		Timestamp:      l.now().UTC(),
	}
	if err := l.recorder.RecordInteraction(ctx, in); err != nil {
		l.logger.Warn("session", "failed to log interaction", map[string]interface{}{
			"session_id": sessionID,
			"error":      err,
		})
	}
}
