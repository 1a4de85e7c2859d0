package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"okrcoach/internal/antipattern"
	"okrcoach/internal/phase"
	"okrcoach/internal/scoring"
)

// ErrNotFound is returned when a session id has no row.
var ErrNotFound = errors.New("session not found")

// Store persists sessions and transcripts in SQLite.
type Store struct {
	DBPath string
	db     *sql.DB
}

// Open opens or creates the session database.
func Open(path string) (*Store, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve session db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure session db dir: %w", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	store := &Store{DBPath: absPath, db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ensureSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	phase TEXT NOT NULL,
	objective TEXT NOT NULL DEFAULT '',
	key_results_json TEXT NOT NULL DEFAULT '[]',
	context_json TEXT NOT NULL DEFAULT '{}',
	profile_json TEXT NOT NULL DEFAULT '{}',
	turn_count INTEGER NOT NULL DEFAULT 0,
	turns_in_phase INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	role TEXT NOT NULL,
	text TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, id);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create session schema: %w", err)
	}
	return nil
}

// Create inserts a new session in the discovery phase.
func (s *Store) Create(ctx scoring.Context, profile antipattern.UserProfile) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		Phase:     phase.Discovery,
		Context:   ctx,
		Profile:   profile,
		CreatedAt: now,
		UpdatedAt: now,
	}

	contextJSON, err := json.Marshal(sess.Context)
	if err != nil {
		return nil, fmt.Errorf("marshal context: %w", err)
	}
	profileJSON, err := json.Marshal(sess.Profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO sessions (id, phase, objective, key_results_json, context_json, profile_json, turn_count, turns_in_phase, created_at, updated_at)
		VALUES (?, ?, '', '[]', ?, ?, 0, 0, ?, ?)
	`, sess.ID, string(sess.Phase), string(contextJSON), string(profileJSON),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return sess, nil
}

// Get loads a session by id.
func (s *Store) Get(id string) (*Session, error) {
	var sess Session
	var phaseStr, keyResultsJSON, contextJSON, profileJSON string
	var createdAt, updatedAt string

	err := s.db.QueryRow(`
		SELECT id, phase, objective, key_results_json, context_json, profile_json,
		       turn_count, turns_in_phase, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id).Scan(
		&sess.ID, &phaseStr, &sess.Objective, &keyResultsJSON, &contextJSON,
		&profileJSON, &sess.TurnCount, &sess.TurnsInPhase, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	parsed, err := phase.Parse(phaseStr)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", id, err)
	}
	sess.Phase = parsed

	if err := json.Unmarshal([]byte(keyResultsJSON), &sess.KeyResults); err != nil {
		return nil, fmt.Errorf("parse key results: %w", err)
	}
	if err := json.Unmarshal([]byte(contextJSON), &sess.Context); err != nil {
		return nil, fmt.Errorf("parse context: %w", err)
	}
	if err := json.Unmarshal([]byte(profileJSON), &sess.Profile); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &sess, nil
}

// Update writes the mutable session fields back.
func (s *Store) Update(sess *Session) error {
	keyResultsJSON, err := json.Marshal(sess.KeyResults)
	if err != nil {
		return fmt.Errorf("marshal key results: %w", err)
	}
	if sess.KeyResults == nil {
		keyResultsJSON = []byte("[]")
	}
	profileJSON, err := json.Marshal(sess.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(`
		UPDATE sessions
		SET phase = ?, objective = ?, key_results_json = ?, profile_json = ?,
		    turn_count = ?, turns_in_phase = ?, updated_at = ?
		WHERE id = ?
	`, string(sess.Phase), sess.Objective, string(keyResultsJSON), string(profileJSON),
		sess.TurnCount, sess.TurnsInPhase, now.Format(time.RFC3339), sess.ID)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	sess.UpdatedAt = now
	return nil
}

// AppendMessage records one transcript message.
func (s *Store) AppendMessage(sessionID, role, text string) error {
	_, err := s.db.Exec(`
		INSERT INTO messages (session_id, role, text, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, role, text, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// Messages returns the transcript in order, up to limit entries from the
// end (0 means all).
func (s *Store) Messages(sessionID string, limit int) ([]Message, error) {
	query := `
		SELECT role, text, created_at FROM messages
		WHERE session_id = ? ORDER BY id ASC
	`
	rows, err := s.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		var createdAt string
		if err := rows.Scan(&m.Role, &m.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	return messages, nil
}

// RecentUserMessages returns the last n user messages, oldest first.
func (s *Store) RecentUserMessages(sessionID string, n int) ([]string, error) {
	messages, err := s.Messages(sessionID, 0)
	if err != nil {
		return nil, err
	}
	var texts []string
	for _, m := range messages {
		if m.Role == "user" {
			texts = append(texts, m.Text)
		}
	}
	if n > 0 && len(texts) > n {
		texts = texts[len(texts)-n:]
	}
	return texts, nil
}
