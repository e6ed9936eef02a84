package simplecal

import (
	"fmt"
	"time"
)

// DateKeyLayout is the layout of the keys of Snapshot.GoalsByDate
const DateKeyLayout = "2006-01-02"

// DateKey returns the goal-map key for the calendar day of t in t's location
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a "yyyy-MM-dd" key into midnight of that day in loc
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", key, err)
	}
	return t, nil
}

// Snapshot is the whole persisted state. It is always read and written in full.
type Snapshot struct {
	GoalsByDate         map[string][]Entry `json:"goalsByDate"`
	BrainDump           []Entry            `json:"brainDump"`
	TodaysFocus         []Entry            `json:"todaysFocus"`
	TotalTasksCompleted int                `json:"totalTasksCompleted"`
	TotalFocusSessions  int                `json:"totalFocusSessions"`
	StreakData          Streak             `json:"streakData"`
}

// NewSnapshot returns an empty snapshot
func NewSnapshot() *Snapshot {
	return &Snapshot{
		GoalsByDate: make(map[string][]Entry),
		BrainDump:   []Entry{},
		TodaysFocus: []Entry{},
	}
}

// Clone returns a deep copy
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		GoalsByDate:         make(map[string][]Entry, len(s.GoalsByDate)),
		BrainDump:           cloneEntries(s.BrainDump),
		TodaysFocus:         cloneEntries(s.TodaysFocus),
		TotalTasksCompleted: s.TotalTasksCompleted,
		TotalFocusSessions:  s.TotalFocusSessions,
		StreakData:          s.StreakData.clone(),
	}
	for key, entries := range s.GoalsByDate {
		c.GoalsByDate[key] = cloneEntries(entries)
	}
	return c
}

// Normalize drops blank entries and empty date lists and replaces nil collections
// with empty ones. Repositories call it before writing and after reading.
func (s *Snapshot) Normalize() {
	if s.GoalsByDate == nil {
		s.GoalsByDate = make(map[string][]Entry)
	}
	for key, entries := range s.GoalsByDate {
		entries = dropBlank(entries)
		if len(entries) == 0 {
			delete(s.GoalsByDate, key)
			continue
		}
		s.GoalsByDate[key] = entries
	}
	s.BrainDump = dropBlank(s.BrainDump)
	s.TodaysFocus = dropBlank(s.TodaysFocus)
}

// goals returns the list for key, creating an empty one if absent
func (s *Snapshot) goals(key string) []Entry {
	entries, ok := s.GoalsByDate[key]
	if !ok {
		entries = []Entry{}
		s.GoalsByDate[key] = entries
	}
	return entries
}

func dropBlank(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !isBlank(e.Text) {
			out = append(out, e)
		}
	}
	return out
}

func indexOf(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

type collectionKind int

const (
	inboxCollection collectionKind = iota
	todayCollection
	goalCollection
)

// Collection names one of the three kinds of entry list
type Collection struct {
	kind    collectionKind
	dateKey string
}

// Inbox is the brain-dump collection
func Inbox() Collection { return Collection{kind: inboxCollection} }

// Today is the today's-focus collection
func Today() Collection { return Collection{kind: todayCollection} }

// GoalsOn is the goal list of the calendar day of date
func GoalsOn(date time.Time) Collection {
	return Collection{kind: goalCollection, dateKey: DateKey(date)}
}

// GoalsOnKey is GoalsOn for an already formatted date key
func GoalsOnKey(key string) Collection {
	return Collection{kind: goalCollection, dateKey: key}
}

// DateKey returns the date key of a goal collection and "" otherwise
func (c Collection) DateKey() string { return c.dateKey }

func (c Collection) String() string {
	switch c.kind {
	case inboxCollection:
		return "inbox"
	case todayCollection:
		return "today"
	default:
		return "goals:" + c.dateKey
	}
}

func (s *Snapshot) entries(c Collection) []Entry {
	switch c.kind {
	case inboxCollection:
		return s.BrainDump
	case todayCollection:
		return s.TodaysFocus
	default:
		return s.GoalsByDate[c.dateKey]
	}
}

func (s *Snapshot) setEntries(c Collection, entries []Entry) {
	switch c.kind {
	case inboxCollection:
		s.BrainDump = entries
	case todayCollection:
		s.TodaysFocus = entries
	default:
		if len(entries) == 0 {
			delete(s.GoalsByDate, c.dateKey)
			return
		}
		s.GoalsByDate[c.dateKey] = entries
	}
}

// find looks an entry up in today, then the inbox, then every date list
func (s *Snapshot) find(id string) (Collection, int, bool) {
	if i := indexOf(s.TodaysFocus, id); i >= 0 {
		return Today(), i, true
	}
	if i := indexOf(s.BrainDump, id); i >= 0 {
		return Inbox(), i, true
	}
	for key, entries := range s.GoalsByDate {
		if i := indexOf(entries, id); i >= 0 {
			return GoalsOnKey(key), i, true
		}
	}
	return Collection{}, -1, false
}
