// Package store persists verified claims, sessions and interactions in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ppiankov/veritas/internal/model"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// timeLayout is fixed width so stored timestamps sort lexically
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite is the persistent store. Writes are serialized in-process; WAL and
// busy_timeout cover other processes sharing the file.
type SQLite struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// Open initializes or connects to the database at path and applies migrations
func Open(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("open sqlite db: empty path")
	}
	if path != MemoryPath {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == MemoryPath {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &SQLite{db: db, path: path}
	if err := s.applyMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database location
func (s *SQLite) Path() string {
	return s.path
}

// Append inserts a verified claim row and returns its id
func (s *SQLite) Append(ctx context.Context, claim model.CachedClaim) (int64, error) {
	if claim.RetrievedAt.IsZero() {
		claim.RetrievedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO verified_claims (
            claim_text, verdict, confidence, retrieved_at, evidence_count, session_id
        ) VALUES (?, ?, ?, ?, ?, ?)`,
		claim.ClaimText,
		string(claim.Verdict),
		claim.Confidence,
		formatTime(claim.RetrievedAt),
		claim.EvidenceCount,
		nullableString(claim.SessionID),
	)
	if err != nil {
		return 0, fmt.Errorf("insert verified claim: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit rows ordered newest first
func (s *SQLite) Recent(ctx context.Context, limit int) ([]model.CachedClaim, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, claim_text, verdict, confidence, retrieved_at, evidence_count, session_id
         FROM verified_claims
         ORDER BY retrieved_at DESC, id DESC
         LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent claims: %w", err)
	}
	defer rows.Close()

	var claims []model.CachedClaim
	for rows.Next() {
		var (
			c         model.CachedClaim
			verdict   string
			retrieved string
			sessionID sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.ClaimText, &verdict, &c.Confidence, &retrieved, &c.EvidenceCount, &sessionID); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		c.Verdict = model.Verdict(verdict)
		c.RetrievedAt = parseTime(retrieved)
		c.SessionID = sessionID.String
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

// CreateSession records a session; re-creating an existing id is a no-op
func (s *SQLite) CreateSession(ctx context.Context, session model.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO sessions (session_id, user_id, created_at) VALUES (?, ?, ?)`,
		session.ID,
		session.UserID,
		formatTime(session.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// RecordInteraction appends one interaction row
func (s *SQLite) RecordInteraction(ctx context.Context, in model.Interaction) error {
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO interactions (session_id, query, processed_input, verdict, timestamp)
         VALUES (?, ?, ?, ?, ?)`,
		in.SessionID,
		in.Query,
		nullableString(in.ProcessedInput),
		in.Verdict,
		formatTime(in.Timestamp),
	)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// Interactions returns the interactions of one session in insertion order
func (s *SQLite) Interactions(ctx context.Context, sessionID string) ([]model.Interaction, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, session_id, query, processed_input, verdict, timestamp
         FROM interactions WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []model.Interaction
	for rows.Next() {
		var (
			in        model.Interaction
			processed sql.NullString
			ts        string
		)
		if err := rows.Scan(&in.ID, &in.SessionID, &in.Query, &processed, &in.Verdict, &ts); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		in.ProcessedInput = processed.String
		in.Timestamp = parseTime(ts)
		out = append(out, in)
	}
	return out, rows.Err()
}

// Stats summarizes stored history
func (s *SQLite) Stats(ctx context.Context) (model.Stats, error) {
	stats := model.Stats{VerdictDistribution: make(map[string]int)}

	var avg sql.NullFloat64
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), AVG(confidence) FROM verified_claims`,
	).Scan(&stats.TotalVerifiedClaims, &avg); err != nil {
		return stats, fmt.Errorf("claim stats: %w", err)
	}
	stats.AverageConfidence = avg.Float64

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM sessions`).Scan(&stats.TotalSessions); err != nil {
		return stats, fmt.Errorf("session stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT verdict, COUNT(1) FROM verified_claims GROUP BY verdict`)
	if err != nil {
		return stats, fmt.Errorf("verdict distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			verdict string
			count   int
		)
		if err := rows.Scan(&verdict, &count); err != nil {
			return stats, err
		}
		stats.VerdictDistribution[verdict] = count
	}
	return stats, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
