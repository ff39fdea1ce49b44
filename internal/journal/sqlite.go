package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/perthho/dailyReco/internal/filler"
)

// SQLitePersister stores the journal in a single SQLite table named records.
// The whole ordered set is rewritten on every save, matching the
// load-everything/save-everything contract of the persistence slot. Order is
// recovered on load from the monotonic id.
type SQLitePersister struct {
	db *sql.DB
}

const recordsSchema = `
	CREATE TABLE IF NOT EXISTS records (
		id             INTEGER PRIMARY KEY,
		date           TEXT NOT NULL,
		duration       TEXT NOT NULL,
		video          TEXT NOT NULL,
		timestamp      TEXT NOT NULL,
		transcription  TEXT NOT NULL DEFAULT '',
		fillerAnalysis TEXT,
		rating         INTEGER NOT NULL DEFAULT 0,
		notes          TEXT NOT NULL DEFAULT '',
		bookmark       REAL
	);
`

// DefaultDBPath returns the journal database path under dataDir.
func DefaultDBPath(dataDir string) string {
	return filepath.Join(dataDir, "dailyreco.sqlite")
}

// OpenSQLite opens (and if needed creates) the journal database.
func OpenSQLite(path string) (*SQLitePersister, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(recordsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLitePersister{db: db}, nil
}

// Close closes the database connection.
func (p *SQLitePersister) Close() error {
	return p.db.Close()
}

// Load reads all records, newest first.
func (p *SQLitePersister) Load() ([]Entry, error) {
	rows, err := p.db.Query(`
		SELECT id, date, duration, video, timestamp, transcription, fillerAnalysis, rating, notes, bookmark
		FROM records
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		var analysis sql.NullString
		var bookmark sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.Date, &e.Duration, &e.Video, &ts,
			&e.Transcription, &analysis, &e.Rating, &e.Notes, &bookmark); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse record timestamp: %w", err)
		}
		if analysis.Valid && analysis.String != "" {
			var report filler.Report
			if err := json.Unmarshal([]byte(analysis.String), &report); err != nil {
				return nil, fmt.Errorf("parse filler analysis for record %d: %w", e.ID, err)
			}
			e.FillerAnalysis = &report
		}
		if bookmark.Valid {
			b := bookmark.Float64
			e.Bookmark = &b
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Save replaces the stored record set with entries, atomically.
func (p *SQLitePersister) Save(entries []Entry) error {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO records (id, date, duration, video, timestamp, transcription, fillerAnalysis, rating, notes, bookmark)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		var analysis any
		if e.FillerAnalysis != nil {
			data, err := json.Marshal(e.FillerAnalysis)
			if err != nil {
				return fmt.Errorf("encode filler analysis for record %d: %w", e.ID, err)
			}
			analysis = string(data)
		}
		var bookmark any
		if e.Bookmark != nil {
			bookmark = *e.Bookmark
		}
		if _, err := stmt.Exec(e.ID, e.Date, e.Duration, e.Video,
			e.Timestamp.Format(time.RFC3339Nano), e.Transcription,
			analysis, e.Rating, e.Notes, bookmark); err != nil {
			return fmt.Errorf("insert record %d: %w", e.ID, err)
		}
	}

	return tx.Commit()
}
