// Package audit writes coaching session events to a SQLite-backed log:
// phase transitions, blocked gates, and objective revisions. Events are
// telemetry; a failed write never blocks the conversation.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	_ "modernc.org/sqlite"
)

const defaultAuditPath = "audit/events.db"

// Logger writes audit events to a specific SQLite DB path.
type Logger struct {
	DBPath string
}

// NewLogger returns a Logger bound to the provided DB path.
func NewLogger(dbPath string) *Logger {
	return &Logger{DBPath: dbPath}
}

// LogEvent writes an audit event to the configured SQLite-backed log.
func (l *Logger) LogEvent(sessionID string, eventType string, payload any) error {
	dbPath := ""
	if l != nil {
		dbPath = l.DBPath
	}
	resolved, err := resolveDBPath(dbPath)
	if err != nil {
		return err
	}
	return writeEvent(resolved, sessionID, eventType, payload)
}

// LogTransition records a phase change.
func (l *Logger) LogTransition(sessionID, from, to string, readinessScore float64) error {
	return l.LogEvent(sessionID, "phase_transition", map[string]any{
		"from":            from,
		"to":              to,
		"readiness_score": readinessScore,
	})
}

// LogGateBlocked records a transition the validator refused.
func (l *Logger) LogGateBlocked(sessionID, from, to string, errors []string) error {
	return l.LogEvent(sessionID, "gate_blocked", map[string]any{
		"from":   from,
		"to":     to,
		"errors": errors,
	})
}

// LogObjectiveRevision records an objective rewrite with a unified diff of
// the change, so coaching progress is reviewable after the fact.
func (l *Logger) LogObjectiveRevision(sessionID, before, after string) error {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before + "\n"),
		B:        difflib.SplitLines(after + "\n"),
		FromFile: "objective (before)",
		ToFile:   "objective (after)",
		Context:  1,
	}
	diffText, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Errorf("render objective diff: %w", err)
	}
	return l.LogEvent(sessionID, "objective_revised", map[string]any{
		"diff": diffText,
	})
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts DATETIME NOT NULL,
			session_id TEXT NOT NULL,
			type TEXT NOT NULL,
			payload_json TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}

func resolveDBPath(dbPath string) (string, error) {
	if dbPath == "" {
		dbPath = os.Getenv("OKRCOACH_AUDIT_DB")
	}
	if dbPath == "" {
		dbPath = defaultAuditPath
	}
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("resolve audit db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("ensure audit db dir: %w", err)
	}
	return absPath, nil
}

func writeEvent(dbPath string, sessionID string, eventType string, payload any) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open audit db: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := ensureSchema(db); err != nil {
		return err
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = db.Exec(
		"INSERT INTO events (ts, session_id, type, payload_json) VALUES (?, ?, ?, ?)",
		time.Now().UTC(),
		sessionID,
		eventType,
		string(payloadJSON),
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}

	return nil
}
