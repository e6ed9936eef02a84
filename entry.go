package simplecal

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prefixes stamped onto entry text by the store.
const (
	GoalPrefix       = "🎯 "
	ReminderPrefix   = "⏰ "
	SubtaskPrefix    = "📝 "
	DecomposedPrefix = "✅ "
)

// Category selects the prefix of a dated goal entry
type Category string

const (
	CategoryGoal     Category = "goal"
	CategoryReminder Category = "reminder"
)

// Prefix returns the emoji prefix for the category. Unknown categories are goals.
func (c Category) Prefix() string {
	if c == CategoryReminder {
		return ReminderPrefix
	}
	return GoalPrefix
}

// ParseCategory maps user input onto a Category
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "reminder", "r":
		return CategoryReminder
	default:
		return CategoryGoal
	}
}

// Entry is a single task record. It lives in exactly one collection at a time.
type Entry struct {
	ID           string     `json:"id"`
	Text         string     `json:"text"`
	IsPriority   bool       `json:"isPriority"`
	StartTime    *time.Time `json:"startTime"`
	IsCompleted  bool       `json:"isCompleted"`
	CreationDate time.Time  `json:"creationDate"`
}

// NewEntry creates an entry with a fresh UUID
func NewEntry(text string, now time.Time) Entry {
	return Entry{
		ID:           uuid.New().String(),
		Text:         text,
		CreationDate: now,
	}
}

// ShortID returns the first eight characters of the id, enough to address an entry from the CLI
func (e Entry) ShortID() string {
	if len(e.ID) > 8 {
		return e.ID[:8]
	}
	return e.ID
}

func (e Entry) clone() Entry {
	if e.StartTime != nil {
		st := *e.StartTime
		e.StartTime = &st
	}
	return e
}

func cloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e.clone()
	}
	return out
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
