// Package history persists probe results to a local sqlite database so
// past runs can be compared.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/velo-bench/velo/internal/config"
	"github.com/velo-bench/velo/internal/engine"
)

var (
	mu     sync.Mutex
	dbPath string
	db     *sql.DB
)

// Entry is one recorded probe result.
type Entry struct {
	RunID     string
	CreatedAt time.Time
	Method    string
	URL       string
	Received  int64
	Speed     int64
	SpeedOK   bool
	Failure   string // "" for a successful probe
}

// Configure overrides the database location. Used by tests; the default
// is ~/.velo/history.db.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	dbPath = path
}

// CloseDB closes the database handle if open.
func CloseDB() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if db != nil {
		_ = db.Close()
		db = nil
	}
}

func openLocked() (*sql.DB, error) {
	if db != nil {
		return db, nil
	}

	path := dbPath
	if path == "" {
		path = config.GetHistoryPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS results (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id     TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		method     TEXT NOT NULL,
		url        TEXT NOT NULL,
		received   INTEGER NOT NULL,
		speed      INTEGER NOT NULL,
		speed_ok   INTEGER NOT NULL,
		failure    TEXT NOT NULL
	)`
	if _, err := handle.Exec(schema); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	db = handle
	return db, nil
}

// lockPath returns the flock path guarding writes against concurrent
// velo invocations.
func lockPath() string {
	path := dbPath
	if path == "" {
		path = config.GetHistoryPath()
	}
	return path + ".lock"
}

// Record inserts every outcome of a run and prunes rows beyond retention.
// retention <= 0 disables pruning.
func Record(runID string, outcomes []engine.Outcome, retention int) error {
	mu.Lock()
	defer mu.Unlock()

	handle, err := openLocked()
	if err != nil {
		return err
	}

	fileLock := flock.New(lockPath())
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("failed to lock history database: %w", err)
	}
	defer func() { _ = fileLock.Unlock() }()

	tx, err := handle.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`INSERT INTO results
		(run_id, created_at, method, url, received, speed, speed_ok, failure)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().Unix()
	for _, o := range outcomes {
		failure := ""
		if !o.OK() {
			failure = o.Reason()
		}
		speedOK := 0
		if o.HasSpeed() {
			speedOK = 1
		}
		if _, err := stmt.Exec(runID, now, o.Target.Method, o.Target.URL, o.Received, o.Speed, speedOK, failure); err != nil {
			return err
		}
	}

	if retention > 0 {
		prune := `DELETE FROM results WHERE id NOT IN
			(SELECT id FROM results ORDER BY id DESC LIMIT ?)`
		if _, err := tx.Exec(prune, retention); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Recent returns the most recent entries, newest first.
func Recent(limit int) ([]Entry, error) {
	mu.Lock()
	defer mu.Unlock()

	handle, err := openLocked()
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 20
	}

	rows, err := handle.Query(`SELECT run_id, created_at, method, url, received, speed, speed_ok, failure
		FROM results ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		var speedOK int
		if err := rows.Scan(&e.RunID, &createdAt, &e.Method, &e.URL, &e.Received, &e.Speed, &speedOK, &e.Failure); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		e.SpeedOK = speedOK == 1
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
