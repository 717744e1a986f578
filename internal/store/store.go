// Package store persists the application documents to a local SQLite file.
// It is a two-key document store: one key holds the serialized AppState,
// the other the in-progress workout draft. Every save is a full-document
// overwrite; there is no partial update and no cross-key transaction.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/meltforce/liftlog/internal/models"
)

const (
	stateKey = "state"
	draftKey = "draft"
)

// ErrNotFound is returned when a document key has never been written.
var ErrNotFound = errors.New("store: document not found")

// Store is the SQLite-backed document store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the document database at dir/liftlog.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "liftlog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		key        TEXT PRIMARY KEY,
		body       BLOB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating documents table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) put(key string, body []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO documents (key, body, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET body = excluded.body, updated_at = CURRENT_TIMESTAMP`,
		key, body,
	)
	if err != nil {
		return fmt.Errorf("writing document %s: %w", key, err)
	}
	return nil
}

func (s *Store) get(key string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", key, err)
	}
	return body, nil
}

func (s *Store) delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM documents WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting document %s: %w", key, err)
	}
	return nil
}

// SaveState overwrites the stored AppState document.
func (s *Store) SaveState(state *models.AppState) error {
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	return s.put(stateKey, body)
}

// LoadState reads the stored AppState. Returns ErrNotFound on a fresh store.
func (s *Store) LoadState() (*models.AppState, error) {
	body, err := s.get(stateKey)
	if err != nil {
		return nil, err
	}
	state := &models.AppState{}
	if err := json.Unmarshal(body, state); err != nil {
		return nil, fmt.Errorf("decoding state: %w", err)
	}
	return state, nil
}

// SaveDraft overwrites the stored workout draft document.
func (s *Store) SaveDraft(draft *models.WorkoutDraft) error {
	body, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encoding draft: %w", err)
	}
	return s.put(draftKey, body)
}

// LoadDraft reads the stored draft. Returns ErrNotFound when no workout
// is in progress.
func (s *Store) LoadDraft() (*models.WorkoutDraft, error) {
	body, err := s.get(draftKey)
	if err != nil {
		return nil, err
	}
	draft := &models.WorkoutDraft{}
	if err := json.Unmarshal(body, draft); err != nil {
		return nil, fmt.Errorf("decoding draft: %w", err)
	}
	return draft, nil
}

// ClearDraft removes the draft document. Clearing an absent draft is a no-op.
func (s *Store) ClearDraft() error {
	return s.delete(draftKey)
}
