package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fmizzell/simplecal"
	"github.com/fmizzell/simplecal/config"
	"github.com/fmizzell/simplecal/gemini"
	"github.com/fmizzell/simplecal/sqlite"
)

// openStore loads the store from the configured data directory and engine.
// The returned close function releases the database, if any.
func openStore() (*simplecal.Store, func(), error) {
	opts := []simplecal.Option{simplecal.WithLogger(logger)}

	if cfg.Storage == config.StorageSQLite {
		repo, err := sqlite.NewInDir(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		store, err := simplecal.NewStore(repo, opts...)
		if err != nil {
			repo.Close()
			return nil, nil, err
		}
		return store, func() { repo.Close() }, nil
	}

	store, err := simplecal.NewStoreWithPersistence(cfg.DataDir, opts...)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

// mustOpenStore is openStore for commands that cannot continue without it
func mustOpenStore() (*simplecal.Store, func()) {
	store, closeFn, err := openStore()
	if err != nil {
		fatal("Failed to load data: %v", err)
	}
	return store, closeFn
}

// newDecomposer builds the Gemini client. A missing key surfaces as a
// ConfigurationError when it is used.
func newDecomposer() simplecal.Decomposer {
	return gemini.NewClient(cfg.Gemini.APIKey,
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithTimeout(cfg.Gemini.Timeout),
		gemini.WithLogger(logger),
	)
}

// resolveEntry finds the entry whose id starts with prefix in c
func resolveEntry(entries []simplecal.Entry, prefix string) (simplecal.Entry, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return simplecal.Entry{}, fmt.Errorf("empty task id")
	}
	var matches []simplecal.Entry
	for _, e := range entries {
		if strings.HasPrefix(e.ID, prefix) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return simplecal.Entry{}, fmt.Errorf("task not found: %s", prefix)
	case 1:
		return matches[0], nil
	default:
		return simplecal.Entry{}, fmt.Errorf("task id %s is ambiguous (%d matches)", prefix, len(matches))
	}
}

// allEntries returns today, inbox and every goal list, in lookup order
func allEntries(store *simplecal.Store) []simplecal.Entry {
	snap := store.Snapshot()
	entries := append(snap.TodaysFocus, snap.BrainDump...)
	for _, goals := range snap.GoalsByDate {
		entries = append(entries, goals...)
	}
	return entries
}

// parseDate accepts today, tomorrow, yesterday or yyyy-mm-dd
func parseDate(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	return simplecal.ParseDateKey(s, now.Location())
}

// parseIndices turns 1-based positions as printed by list commands into 0-based indices
func parseIndices(args []string) ([]int, error) {
	indices := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid position %q", a)
		}
		indices = append(indices, n-1)
	}
	return indices, nil
}

func printEntries(title string, entries []simplecal.Entry) {
	fmt.Printf("%s\n", title)
	if len(entries) == 0 {
		fmt.Println("  (empty)")
		return
	}
	for i, e := range entries {
		fmt.Printf("  %s\n", formatEntry(i, e))
	}
}

func formatEntry(i int, e simplecal.Entry) string {
	status := "○"
	if e.IsCompleted {
		status = "✓"
	}
	line := fmt.Sprintf("%2d. %s [%s] %s", i+1, status, e.ShortID(), e.Text)
	if e.IsPriority {
		line += " ❗"
	}
	if e.StartTime != nil {
		line += " @ " + e.StartTime.Format("15:04")
	}
	return line
}
