// Package sqlite provides a SQLite-backed implementation of simplecal.Repository.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fmizzell/simplecal"
	_ "modernc.org/sqlite" // pure-Go SQLite driver, no CGO required
)

// FileName is the database file kept in the data directory
const FileName = "simplecal.db"

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id           TEXT    PRIMARY KEY,
	collection   TEXT    NOT NULL,
	date_key     TEXT    NOT NULL DEFAULT '',
	position     INTEGER NOT NULL,
	text         TEXT    NOT NULL,
	is_priority  INTEGER NOT NULL DEFAULT 0,
	is_completed INTEGER NOT NULL DEFAULT 0,
	start_time   TEXT,
	created_at   TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS counters (
	name  TEXT    PRIMARY KEY,
	value INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS streak (
	id                   INTEGER PRIMARY KEY CHECK (id = 1),
	current_streak       INTEGER NOT NULL,
	last_completion_date TEXT
);`

const (
	collectionInbox = "inbox"
	collectionToday = "today"
	collectionGoals = "goals"

	counterTasksCompleted = "total_tasks_completed"
	counterFocusSessions  = "total_focus_sessions"
)

// Repository stores the snapshot as rows. Save replaces every row in one
// transaction so a failed save leaves the previous snapshot intact.
type Repository struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at path
func New(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer; SQLite serializes anyway
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Repository{db: db}, nil
}

// NewInDir opens FileName inside dataDir, creating the directory
func NewInDir(dataDir string) (*Repository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return New(filepath.Join(dataDir, FileName))
}

// Load reads every row back into a snapshot
func (r *Repository) Load() (*simplecal.Snapshot, error) {
	snap := simplecal.NewSnapshot()

	rows, err := r.db.Query(
		`SELECT id, collection, date_key, text, is_priority, is_completed, start_time, created_at
		 FROM entries ORDER BY collection, date_key, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e                   simplecal.Entry
			collection, dateKey string
			priority, completed int
			startTime           sql.NullString
			createdAt           string
		)
		if err := rows.Scan(&e.ID, &collection, &dateKey, &e.Text, &priority, &completed, &startTime, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.IsPriority = priority != 0
		e.IsCompleted = completed != 0
		if e.CreationDate, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("entry %s: bad created_at: %w", e.ID, err)
		}
		if startTime.Valid {
			st, err := time.Parse(time.RFC3339Nano, startTime.String)
			if err != nil {
				return nil, fmt.Errorf("entry %s: bad start_time: %w", e.ID, err)
			}
			e.StartTime = &st
		}

		switch collection {
		case collectionInbox:
			snap.BrainDump = append(snap.BrainDump, e)
		case collectionToday:
			snap.TodaysFocus = append(snap.TodaysFocus, e)
		case collectionGoals:
			snap.GoalsByDate[dateKey] = append(snap.GoalsByDate[dateKey], e)
		default:
			return nil, fmt.Errorf("entry %s: unknown collection %q", e.ID, collection)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	counters, err := r.db.Query(`SELECT name, value FROM counters`)
	if err != nil {
		return nil, fmt.Errorf("query counters: %w", err)
	}
	defer counters.Close()
	for counters.Next() {
		var name string
		var value int
		if err := counters.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan counter: %w", err)
		}
		switch name {
		case counterTasksCompleted:
			snap.TotalTasksCompleted = value
		case counterFocusSessions:
			snap.TotalFocusSessions = value
		}
	}
	if err := counters.Err(); err != nil {
		return nil, err
	}

	var last sql.NullString
	err = r.db.QueryRow(`SELECT current_streak, last_completion_date FROM streak WHERE id = 1`).
		Scan(&snap.StreakData.CurrentStreak, &last)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, fmt.Errorf("query streak: %w", err)
	case last.Valid:
		t, err := time.Parse(time.RFC3339Nano, last.String)
		if err != nil {
			return nil, fmt.Errorf("bad last_completion_date: %w", err)
		}
		snap.StreakData.LastCompletionDate = &t
	}

	snap.Normalize()
	return snap, nil
}

// Save replaces the stored snapshot with snap
func (r *Repository) Save(snap *simplecal.Snapshot) error {
	out := snap.Clone()
	out.Normalize()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO entries (id, collection, date_key, position, text, is_priority, is_completed, start_time, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	insert := func(collection, dateKey string, entries []simplecal.Entry) error {
		for i, e := range entries {
			if _, err := stmt.Exec(
				e.ID, collection, dateKey, i, e.Text,
				boolToInt(e.IsPriority), boolToInt(e.IsCompleted),
				formatTime(e.StartTime), e.CreationDate.Format(time.RFC3339Nano),
			); err != nil {
				return fmt.Errorf("insert entry %s: %w", e.ID, err)
			}
		}
		return nil
	}

	if err := insert(collectionInbox, "", out.BrainDump); err != nil {
		return err
	}
	if err := insert(collectionToday, "", out.TodaysFocus); err != nil {
		return err
	}
	keys := make([]string, 0, len(out.GoalsByDate))
	for key := range out.GoalsByDate {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := insert(collectionGoals, key, out.GoalsByDate[key]); err != nil {
			return err
		}
	}

	for name, value := range map[string]int{
		counterTasksCompleted: out.TotalTasksCompleted,
		counterFocusSessions:  out.TotalFocusSessions,
	} {
		if _, err := tx.Exec(
			`INSERT INTO counters (name, value) VALUES (?, ?)
			 ON CONFLICT(name) DO UPDATE SET value = excluded.value`, name, value,
		); err != nil {
			return fmt.Errorf("save counter %s: %w", name, err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO streak (id, current_streak, last_completion_date) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET current_streak = excluded.current_streak,
		 last_completion_date = excluded.last_completion_date`,
		out.StreakData.CurrentStreak, formatTime(out.StreakData.LastCompletionDate),
	); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}

	return tx.Commit()
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}

func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
