package simplecal

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Repository loads and saves whole snapshots
type Repository interface {
	Load() (*Snapshot, error)
	Save(*Snapshot) error
}

// Change is published to subscribers after an event has been applied
type Change struct {
	Event Event
	// Err is set when the snapshot could not be saved. The change is still
	// applied in memory.
	Err error
}

// Stats are the gamification counters
type Stats struct {
	TotalTasksCompleted int        `json:"totalTasksCompleted"`
	TotalFocusSessions  int        `json:"totalFocusSessions"`
	CurrentStreak       int        `json:"currentStreak"`
	LastCompletionDate  *time.Time `json:"lastCompletionDate"`
}

// Store owns the task collections and is the single writer of the repository
type Store struct {
	mu          sync.Mutex
	snap        *Snapshot
	repo        Repository
	clock       func() time.Time
	logger      *slog.Logger
	lastSaveErr error

	subMu  sync.Mutex
	subs   map[int]Listener
	nextID int
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now, mostly for tests
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithLogger sets the logger used for persistence failures
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore loads the snapshot from repo and applies the load-time streak check
func NewStore(repo Repository, opts ...Option) (*Store, error) {
	s := &Store{
		repo:   repo,
		clock:  time.Now,
		logger: slog.Default(),
		subs:   make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap == nil {
		snap = NewSnapshot()
	}
	snap.Normalize()
	s.snap = snap

	if err := s.Process(&StreakChecked{Time: s.clock()}); err != nil {
		return nil, err
	}
	return s, nil
}

// Process is the single method that changes state. It applies the event,
// saves the full snapshot and notifies subscribers. Events that change
// nothing are neither saved nor published.
func (s *Store) Process(event Event) error {
	s.mu.Lock()
	next := s.snap.Clone()
	changed, err := reduce(next, event)
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}
	s.snap = next

	saveErr := s.save()
	s.mu.Unlock()

	s.publish(Change{Event: event, Err: saveErr})
	return nil
}

// save writes the snapshot. Failures are logged and remembered, never returned
// to the mutating caller. Must be called with s.mu held.
func (s *Store) save() error {
	out := s.snap.Clone()
	out.Normalize()
	if err := s.repo.Save(out); err != nil {
		werr := &PersistenceWriteError{Err: err}
		s.logger.Error("snapshot save failed", "error", err)
		s.lastSaveErr = werr
		return werr
	}
	s.lastSaveErr = nil
	return nil
}

// LastSaveError returns the error of the most recent save, nil if it succeeded
func (s *Store) LastSaveError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaveErr
}

// Now returns the store's current time
func (s *Store) Now() time.Time {
	return s.clock()
}

// AddInboxTask appends a new entry to the inbox. Blank text is ignored.
func (s *Store) AddInboxTask(text string) (Entry, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, false
	}
	now := s.clock()
	entry := NewEntry(text, now)
	if err := s.Process(&InboxTaskAdded{Entry: entry, Time: now}); err != nil {
		return Entry{}, false
	}
	return entry, true
}

// AddGoal appends a prefixed entry to the goal list of date
func (s *Store) AddGoal(date time.Time, text string, category Category) (Entry, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, false
	}
	now := s.clock()
	entry := NewEntry(category.Prefix()+text, now)
	if err := s.Process(&GoalAdded{DateKey: DateKey(date), Entry: entry, Time: now}); err != nil {
		return Entry{}, false
	}
	return entry, true
}

// MoveToToday moves an inbox entry to today's focus; unknown ids are ignored
func (s *Store) MoveToToday(id string) {
	s.Process(&TaskMovedToToday{EntryID: id, Time: s.clock()})
}

// CompleteTask marks an entry completed. Completing it again changes nothing.
func (s *Store) CompleteTask(id string) {
	s.Process(&TaskCompleted{EntryID: id, Time: s.clock()})
}

// UpdateStartTime sets (or with nil clears) a today entry's start time and
// re-sorts today's focus by start time
func (s *Store) UpdateStartTime(id string, start *time.Time) {
	s.Process(&StartTimeUpdated{EntryID: id, StartTime: start, Time: s.clock()})
}

// DeleteAt removes the entries at indices. If any index is out of range
// nothing is removed and an InvalidIndexError is returned.
func (s *Store) DeleteAt(c Collection, indices []int) error {
	return s.Process(&EntriesDeleted{Collection: c, Indices: indices, Time: s.clock()})
}

// TogglePriority flips the priority of a goal on date
func (s *Store) TogglePriority(date time.Time, id string) {
	s.Process(&PriorityToggled{DateKey: DateKey(date), EntryID: id, Time: s.clock()})
}

// RecordFocusSession counts one finished Pomodoro session
func (s *Store) RecordFocusSession() {
	s.Process(&FocusSessionCompleted{Time: s.clock()})
}

// InboxEntries returns a copy of the inbox
func (s *Store) InboxEntries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.snap.BrainDump)
}

// TodayEntries returns a copy of today's focus
func (s *Store) TodayEntries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.snap.TodaysFocus)
}

// GoalsFor returns a copy of the goals on date's calendar day
func (s *Store) GoalsFor(date time.Time) []Entry {
	return s.Entries(GoalsOn(date))
}

// Entries returns a copy of any collection
func (s *Store) Entries(c Collection) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.snap.entries(c))
}

// Find returns the entry with id and the collection holding it
func (s *Store) Find(id string) (Entry, Collection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, i, ok := s.snap.find(id)
	if !ok {
		return Entry{}, Collection{}, false
	}
	return s.snap.entries(c)[i].clone(), c, true
}

// Stats returns the counters and streak
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	streak := s.snap.StreakData.clone()
	return Stats{
		TotalTasksCompleted: s.snap.TotalTasksCompleted,
		TotalFocusSessions:  s.snap.TotalFocusSessions,
		CurrentStreak:       streak.CurrentStreak,
		LastCompletionDate:  streak.LastCompletionDate,
	}
}

// Snapshot returns a deep copy of the whole state
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// MonthGrid lays out month with today and has-goals markers
func (s *Store) MonthGrid(month time.Time, firstWeekday time.Weekday) MonthGrid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewMonthGrid(month, s.clock(), firstWeekday, func(key string) bool {
		return len(s.snap.GoalsByDate[key]) > 0
	})
}
