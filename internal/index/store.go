// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index keeps a SQLite snapshot of the last validated catalog for
// the dashboard: filter by domain, type, and horizon, and full-text search
// over names, abbreviations, and features.
//
// The index is derived data. It is rebuilt from a fresh load each time and
// is never read back by the catalog loader.
package index

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/padelf-catalog/pkg/types"
)

const defaultMaxResults = 50

// Store manages the index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Snapshot describes one indexed catalog load.
type Snapshot struct {
	ID        string    `json:"id" yaml:"id"`
	Source    string    `json:"source" yaml:"source"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Count     int       `json:"count" yaml:"count"`
}

// Open opens or creates the index database at cfg.DBPath and creates the
// schema if it does not exist.
func Open(cfg types.IndexConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("index database path is empty")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			source TEXT,
			created_at TEXT NOT NULL,
			count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS datasets (
			position INTEGER PRIMARY KEY,
			dataset_id TEXT NOT NULL,
			name TEXT NOT NULL,
			abbreviation TEXT,
			type TEXT NOT NULL,
			domain TEXT NOT NULL,
			features TEXT,
			doc TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_datasets_domain ON datasets(domain)`,
		`CREATE INDEX IF NOT EXISTS idx_datasets_type ON datasets(type)`,
		`CREATE TABLE IF NOT EXISTS dataset_horizons (
			position INTEGER NOT NULL REFERENCES datasets(position) ON DELETE CASCADE,
			horizon TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_horizons_horizon ON dataset_horizons(horizon)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='datasets_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE datasets_fts USING fts5(
			name, abbreviation, features, content=datasets, content_rowid=position
		)`,
		`CREATE TRIGGER datasets_ai AFTER INSERT ON datasets BEGIN
			INSERT INTO datasets_fts(rowid, name, abbreviation, features)
			VALUES (new.position, new.name, new.abbreviation, new.features);
		END`,
		`CREATE TRIGGER datasets_ad AFTER DELETE ON datasets BEGIN
			INSERT INTO datasets_fts(datasets_fts, rowid, name, abbreviation, features)
			VALUES ('delete', old.position, old.name, old.abbreviation, old.features);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// Replace swaps the indexed catalog for datasets in one transaction and
// records a new snapshot. Positions follow slice order.
func (s *Store) Replace(ctx context.Context, src string, datasets []types.Dataset) (Snapshot, error) {
	snap := Snapshot{
		ID:        uuid.NewString(),
		Source:    src,
		CreatedAt: time.Now().UTC(),
		Count:     len(datasets),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM dataset_horizons`,
		`DELETE FROM datasets`,
		`DELETE FROM snapshots`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return Snapshot{}, fmt.Errorf("clearing index: %w", err)
		}
	}

	insDataset, err := tx.PrepareContext(ctx,
		`INSERT INTO datasets (position, dataset_id, name, abbreviation, type, domain, features, doc)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("preparing dataset insert: %w", err)
	}
	defer insDataset.Close()

	insHorizon, err := tx.PrepareContext(ctx,
		`INSERT INTO dataset_horizons (position, horizon) VALUES (?, ?)`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("preparing horizon insert: %w", err)
	}
	defer insHorizon.Close()

	for i, d := range datasets {
		doc, err := json.Marshal(d)
		if err != nil {
			return Snapshot{}, fmt.Errorf("marshaling %s: %w", d.DatasetID, err)
		}
		var abbr any
		if d.Abbreviation != nil {
			abbr = *d.Abbreviation
		}
		if _, err := insDataset.ExecContext(ctx,
			i, d.DatasetID, d.Name, abbr, d.Type, d.Domain,
			strings.Join(d.Features, " "), string(doc),
		); err != nil {
			return Snapshot{}, fmt.Errorf("inserting dataset %s: %w", d.DatasetID, err)
		}
		for _, h := range d.Horizons {
			if _, err := insHorizon.ExecContext(ctx, i, h); err != nil {
				return Snapshot{}, fmt.Errorf("inserting horizon for %s: %w", d.DatasetID, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, created_at, count) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.Source, snap.CreatedAt.Format(time.RFC3339Nano), snap.Count,
	); err != nil {
		return Snapshot{}, fmt.Errorf("recording snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("committing index: %w", err)
	}
	return snap, nil
}

// Latest returns the current snapshot. ok is false when nothing has been
// indexed yet.
func (s *Store) Latest(ctx context.Context) (snap Snapshot, ok bool, err error) {
	var created string
	err = s.db.QueryRowContext(ctx,
		`SELECT id, source, created_at, count FROM snapshots ORDER BY created_at DESC LIMIT 1`,
	).Scan(&snap.ID, &snap.Source, &created, &snap.Count)
	if err == sql.ErrNoRows {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("reading snapshot: %w", err)
	}
	if snap.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Snapshot{}, false, fmt.Errorf("parsing snapshot time: %w", err)
	}
	return snap, true, nil
}
