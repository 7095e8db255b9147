// Package store persists session state in SQLite: the rule text, the
// active filters, the transaction-table visibility flag, and serialized
// transaction snapshots for session continuity. Keys embed a version
// token so a format change never collides with prior-version data.
// Persistence is best-effort by contract: callers log and ignore errors
// from here, and the in-memory pipeline never depends on a write landing.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tally/internal/core"
)

// Versioned state keys.
const (
	keyPrefix       = "tally.v1."
	KeyRules        = keyPrefix + "rules"
	KeyMonthFilter  = keyPrefix + "month_filter"
	KeyCatFilter    = keyPrefix + "category_filter"
	KeyShowTable    = keyPrefix + "show_transactions"
	KeyLastSnapshot = keyPrefix + "last_snapshot"
)

// ErrNotFound signals a missing key; callers fall back to defaults.
var ErrNotFound = errors.New("state key not found")

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value for a state key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get state %s: %w", key, err)
	}
	return value, nil
}

// Set upserts a state key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("set state %s: %w", key, err)
	}
	return nil
}

// SaveSnapshot stores the whole transaction set as one JSON document and
// records it as the latest snapshot. Returns the snapshot id.
func (s *Store) SaveSnapshot(ctx context.Context, txs []core.Transaction) (string, error) {
	body, err := json.Marshal(txs)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx, `INSERT INTO snapshots (id, body) VALUES (?, ?)`, id, string(body))
	if err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}
	if err := s.Set(ctx, KeyLastSnapshot, id); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "Snapshot saved", "id", id, "transactions", len(txs))
	return id, nil
}

// LoadLastSnapshot restores the most recent transaction snapshot.
// A missing snapshot is ErrNotFound, not a failure.
func (s *Store) LoadLastSnapshot(ctx context.Context) ([]core.Transaction, error) {
	id, err := s.Get(ctx, KeyLastSnapshot)
	if err != nil {
		return nil, err
	}
	var body string
	err = s.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	var txs []core.Transaction
	if err := json.Unmarshal([]byte(body), &txs); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", id, err)
	}
	return txs, nil
}

// PruneSnapshots keeps only the newest n snapshots.
func (s *Store) PruneSnapshots(ctx context.Context, keep int) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY created_at DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
