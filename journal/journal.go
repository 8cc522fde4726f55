// Package journal persists resolved intents to an SQLite database so test
// runs leave an inspectable trail of which locators were synthesized for
// which pages. The journal plugs into the session logging fan-out.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/HearthWarrio/intentium/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS resolutions (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    resolved_at  TEXT NOT NULL,
    url          TEXT NOT NULL DEFAULT '',
    phrase       TEXT NOT NULL,
    role         TEXT NOT NULL,
    xpath        TEXT NOT NULL,
    css          TEXT NOT NULL,
    score        REAL NOT NULL DEFAULT 0,
    element_id   TEXT NOT NULL DEFAULT '',
    element_name TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_resolutions_phrase ON resolutions(phrase, resolved_at);
`

type config struct {
	busyTimeout int
	synchronous string
	mkdirAll    bool
}

// Option customises Open behaviour.
type Option func(*config)

// WithBusyTimeout sets PRAGMA busy_timeout in milliseconds. Default: 10000.
func WithBusyTimeout(ms int) Option { return func(c *config) { c.busyTimeout = ms } }

// WithSynchronous sets PRAGMA synchronous. Default: "NORMAL".
func WithSynchronous(mode string) Option { return func(c *config) { c.synchronous = mode } }

// WithMkdirAll creates parent directories of the database path before opening.
func WithMkdirAll() Option { return func(c *config) { c.mkdirAll = true } }

// Journal is an SQLite-backed resolution log. It implements session.Logger.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and if needed creates) the journal database at path.
// ":memory:" opens a throwaway in-memory journal.
func Open(path string, opts ...Option) (*Journal, error) {
	cfg := config{busyTimeout: 10_000, synchronous: "NORMAL"}
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.mkdirAll && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("journal: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open: %w", err)
	}
	if path == ":memory:" {
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.busyTimeout),
		fmt.Sprintf("PRAGMA synchronous = %s", cfg.synchronous),
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal: %s: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: exec schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: ping: %w", err)
	}

	return &Journal{db: db, now: time.Now}, nil
}

// LogResolved appends one resolution row.
func (j *Journal) LogResolved(ctx context.Context, res *session.Resolved) error {
	if res == nil {
		return nil
	}
	elementID, elementName := "", ""
	if res.Element != nil {
		elementID = res.Element.ID
		elementName = res.Element.Name
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO resolutions
			(resolved_at, url, phrase, role, xpath, css, score, element_id, element_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.now().UTC().Format(time.RFC3339Nano),
		res.URL, res.Phrase, res.Role.String(),
		res.XPath, res.CSS, res.Score,
		elementID, elementName,
	)
	if err != nil {
		return fmt.Errorf("journal: insert resolution: %w", err)
	}
	return nil
}

// Entry is one journal row.
type Entry struct {
	At          time.Time
	URL         string
	Phrase      string
	Role        string
	XPath       string
	CSS         string
	Score       float64
	ElementID   string
	ElementName string
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT resolved_at, url, phrase, role, xpath, css, score, element_id, element_name
		FROM resolutions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: query recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&at, &e.URL, &e.Phrase, &e.Role, &e.XPath, &e.CSS,
			&e.Score, &e.ElementID, &e.ElementName); err != nil {
			return nil, fmt.Errorf("journal: scan resolution: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.At = ts
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterate resolutions: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
