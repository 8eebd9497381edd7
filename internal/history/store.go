// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists the cross-run paper logs and the incremental
// search cursor in a SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/digest-engine/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "history.db"

	cursorKey = "most_recent_day_searched"
	dateFmt   = "2006-01-02"
)

// Store manages the history SQLite database. The seen and downloaded
// logs are append-only: rediscovering a paper on a later run inserts a
// new row with the same paper ID rather than updating the old one.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the history database at workDir/index/history.db
// and creates the schema if it does not exist.
func NewStore(workDir string) (*Store, error) {
	dbDir := filepath.Join(workDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS papers_seen (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			title TEXT,
			arxiv_url TEXT,
			pdf_url TEXT,
			published TEXT,
			score INTEGER,
			run_date TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS papers_downloaded (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			title TEXT,
			arxiv_url TEXT,
			pdf_url TEXT,
			published TEXT,
			score INTEGER,
			run_date TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_seen_id ON papers_seen(id)`,
		`CREATE INDEX IF NOT EXISTS idx_downloaded_id ON papers_downloaded(id)`,
		`CREATE TABLE IF NOT EXISTS search_cursor (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordSeen appends candidates to the seen log under the run date.
func (s *Store) RecordSeen(candidates []types.Candidate, runDate time.Time) error {
	return s.appendLog("papers_seen", candidates, runDate)
}

// RecordDownloaded appends candidates to the downloaded log under the run date.
func (s *Store) RecordDownloaded(candidates []types.Candidate, runDate time.Time) error {
	return s.appendLog("papers_downloaded", candidates, runDate)
}

func (s *Store) appendLog(table string, candidates []types.Candidate, runDate time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	stmt, err := tx.Prepare(fmt.Sprintf(
		`INSERT INTO %s (id, title, arxiv_url, pdf_url, published, score, run_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`, table))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range candidates {
		published := ""
		if !c.Published.IsZero() {
			published = c.Published.Format(dateFmt)
		}
		if _, err := stmt.Exec(c.ID, c.Title, c.ArxivURL, c.PDFURL, published, c.Score, runDate.Format(dateFmt)); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}

// Seen reports whether a paper ID appears in the seen log.
func (s *Store) Seen(id string) (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM papers_seen WHERE id = ?`, id).Scan(&n); err != nil {
		return false, fmt.Errorf("querying seen log: %w", err)
	}
	return n > 0, nil
}

// Cursor returns the recorded incremental start date, if any.
func (s *Store) Cursor() (time.Time, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM search_cursor WHERE key = ?`, cursorKey).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("querying cursor: %w", err)
	}

	t, err := time.Parse(dateFmt, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing cursor %q: %w", value, err)
	}
	return t, true, nil
}

// SetCursor records date as the next run's incremental start point.
func (s *Store) SetCursor(date time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO search_cursor (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		cursorKey, date.Format(dateFmt))
	if err != nil {
		return fmt.Errorf("setting cursor: %w", err)
	}
	return nil
}
