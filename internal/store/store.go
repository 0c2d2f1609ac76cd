// Package store logs conversations to a local SQLite database. Writes
// are fire-and-forget from the pipeline's point of view: the orchestrator
// treats every store failure as a log line, never as a user-visible error.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	user_text TEXT NOT NULL,
	intent TEXT,
	provider TEXT,
	llm_raw TEXT,
	sanitized_text TEXT,
	metadata TEXT
);
CREATE INDEX IF NOT EXISTS idx_conversations_created_at ON conversations(created_at);
`

// Record is one logged conversation row.
type Record struct {
	ID            int64          `json:"id"`
	CreatedAt     string         `json:"created_at"`
	UserText      string         `json:"user_text"`
	Intent        string         `json:"intent"`
	Provider      string         `json:"provider"`
	LLMRaw        map[string]any `json:"llm_raw"`
	SanitizedText string         `json:"sanitized_text"`
	Metadata      map[string]any `json:"metadata"`
}

// Store is the conversation log backed by SQLite. Safe for concurrent
// use; database/sql pools connections underneath.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.edututor/edututor.db.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "edututor.db"
	}
	return filepath.Join(home, ".edututor", "edututor.db")
}

// Open opens (or creates) the conversation database. Empty path uses
// DefaultPath. Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: set journal_mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// SaveConversation inserts one row and returns its id.
func (s *Store) SaveConversation(userText, intentName, provider string, llmRaw map[string]any, sanitized string, metadata map[string]any) (int64, error) {
	createdAt := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	rawTxt := marshalMap(llmRaw)
	metaTxt := marshalMap(metadata)

	res, err := s.db.Exec(
		`INSERT INTO conversations
		 (created_at, user_text, intent, provider, llm_raw, sanitized_text, metadata)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		createdAt, userText, intentName, provider, rawTxt, sanitized, metaTxt,
	)
	if err != nil {
		return 0, fmt.Errorf("store: insert conversation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("store: last insert id: %w", err)
	}
	return id, nil
}

// FetchRecent returns up to limit rows, newest first.
func (s *Store) FetchRecent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(
		`SELECT id, created_at, user_text, intent, provider, llm_raw, sanitized_text, metadata
		 FROM conversations ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query recent: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// FetchByID returns one row, or nil when the id does not exist.
func (s *Store) FetchByID(id int64) (*Record, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at, user_text, intent, provider, llm_raw, sanitized_text, metadata
		 FROM conversations WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("store: query by id: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ExportJSON serializes up to limit recent rows as an indented JSON array.
func (s *Store) ExportJSON(limit int) (string, error) {
	recs, err := s.FetchRecent(limit)
	if err != nil {
		return "", err
	}
	if recs == nil {
		recs = []Record{}
	}
	out, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("store: marshal export: %w", err)
	}
	return string(out), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var rawTxt, metaTxt sql.NullString
	if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.UserText, &rec.Intent, &rec.Provider, &rawTxt, &rec.SanitizedText, &metaTxt); err != nil {
		return Record{}, fmt.Errorf("store: scan row: %w", err)
	}
	rec.LLMRaw = unmarshalMap(rawTxt.String)
	rec.Metadata = unmarshalMap(metaTxt.String)
	return rec, nil
}

func marshalMap(m map[string]any) string {
	if m == nil {
		m = map[string]any{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// unmarshalMap tolerates malformed stored JSON: diagnostics are not worth
// failing a read over.
func unmarshalMap(s string) map[string]any {
	m := map[string]any{}
	if s == "" {
		return m
	}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return map[string]any{}
	}
	return m
}
