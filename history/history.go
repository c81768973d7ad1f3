// Package history keeps a local SQLite log of mutations performed from
// this console: who issued which command against which entity, and when.
// It is purely local bookkeeping — resource state always comes from the
// backend.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded action.
type Entry struct {
	ID         int64
	OccurredAt time.Time
	Actor      string
	Action     string
	Entity     string
	EntityID   int64
	Detail     string
}

// Log provides append and query access over the activity database.
type Log struct {
	db *sql.DB

	recordStmt *sql.Stmt
}

// Open opens (or creates) the activity database at dbPath and applies
// schema migrations.
func Open(dbPath string) (*Log, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	log := &Log{db: db}
	if log.recordStmt, err = db.Prepare(
		`INSERT INTO activity(occurred_at,actor,action,entity,entity_id,detail) VALUES(?,?,?,?,?,?)`,
	); err != nil {
		db.Close()
		return nil, err
	}
	return log, nil
}

// Close releases the prepared statement and closes the DB.
func (l *Log) Close() error {
	if l.recordStmt != nil {
		l.recordStmt.Close()
	}
	return l.db.Close()
}

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS activity (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
            actor TEXT NOT NULL,
            action TEXT NOT NULL,
            entity TEXT NOT NULL,
            entity_id INTEGER NOT NULL DEFAULT 0,
            detail TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE INDEX IF NOT EXISTS idx_activity_time ON activity(occurred_at DESC);`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}

	return tx.Commit()
}

// Record appends one action. entityID may be 0 when the action has no
// single target (bulk report export, login).
func (l *Log) Record(actor, action, entity string, entityID int64, detail string) error {
	_, err := l.recordStmt.Exec(time.Now().UTC(), actor, action, entity, entityID, detail)
	return err
}

// Recent returns up to limit entries, newest first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(
		`SELECT id,occurred_at,actor,action,entity,entity_id,detail
         FROM activity ORDER BY occurred_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OccurredAt, &e.Actor, &e.Action, &e.Entity, &e.EntityID, &e.Detail); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
