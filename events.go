package simplecal

import (
	"fmt"
	"strings"
	"time"
)

// Event is a single state change. Store.Process is the only way state changes.
type Event interface {
	Type() string
	Timestamp() time.Time
}

// InboxTaskAdded appends Entry to the inbox
type InboxTaskAdded struct {
	Entry Entry     `json:"entry"`
	Time  time.Time `json:"time"`
}

func (e InboxTaskAdded) Type() string         { return "inbox_task_added" }
func (e InboxTaskAdded) Timestamp() time.Time { return e.Time }

// GoalAdded appends Entry to the goal list of DateKey
type GoalAdded struct {
	DateKey string    `json:"dateKey"`
	Entry   Entry     `json:"entry"`
	Time    time.Time `json:"time"`
}

func (e GoalAdded) Type() string         { return "goal_added" }
func (e GoalAdded) Timestamp() time.Time { return e.Time }

// TaskMovedToToday moves an inbox entry to today's focus
type TaskMovedToToday struct {
	EntryID string    `json:"entryId"`
	Time    time.Time `json:"time"`
}

func (e TaskMovedToToday) Type() string         { return "task_moved_to_today" }
func (e TaskMovedToToday) Timestamp() time.Time { return e.Time }

// TaskCompleted event
type TaskCompleted struct {
	EntryID string    `json:"entryId"`
	Time    time.Time `json:"time"`
}

func (e TaskCompleted) Type() string         { return "task_completed" }
func (e TaskCompleted) Timestamp() time.Time { return e.Time }

// StartTimeUpdated sets or clears the start time of a today entry
type StartTimeUpdated struct {
	EntryID   string     `json:"entryId"`
	StartTime *time.Time `json:"startTime"`
	Time      time.Time  `json:"time"`
}

func (e StartTimeUpdated) Type() string         { return "start_time_updated" }
func (e StartTimeUpdated) Timestamp() time.Time { return e.Time }

// EntriesDeleted removes entries by position
type EntriesDeleted struct {
	Collection Collection `json:"collection"`
	Indices    []int      `json:"indices"`
	Time       time.Time  `json:"time"`
}

func (e EntriesDeleted) Type() string         { return "entries_deleted" }
func (e EntriesDeleted) Timestamp() time.Time { return e.Time }

// PriorityToggled flips the priority flag of a goal
type PriorityToggled struct {
	DateKey string    `json:"dateKey"`
	EntryID string    `json:"entryId"`
	Time    time.Time `json:"time"`
}

func (e PriorityToggled) Type() string         { return "priority_toggled" }
func (e PriorityToggled) Timestamp() time.Time { return e.Time }

// FocusSessionCompleted is emitted when a Pomodoro countdown runs out
type FocusSessionCompleted struct {
	Time time.Time `json:"time"`
}

func (e FocusSessionCompleted) Type() string         { return "focus_session_completed" }
func (e FocusSessionCompleted) Timestamp() time.Time { return e.Time }

// TaskDecomposed replaces an inbox entry with its subtasks and logs the
// original as done in today's focus
type TaskDecomposed struct {
	EntryID   string    `json:"entryId"`
	Completed Entry     `json:"completed"`
	Subtasks  []Entry   `json:"subtasks"`
	Time      time.Time `json:"time"`
}

func (e TaskDecomposed) Type() string         { return "task_decomposed" }
func (e TaskDecomposed) Timestamp() time.Time { return e.Time }

// GoalDecomposed appends a completed goal and its subtasks to a date
type GoalDecomposed struct {
	DateKey   string    `json:"dateKey"`
	Completed Entry     `json:"completed"`
	Subtasks  []Entry   `json:"subtasks"`
	Time      time.Time `json:"time"`
}

func (e GoalDecomposed) Type() string         { return "goal_decomposed" }
func (e GoalDecomposed) Timestamp() time.Time { return e.Time }

// StreakChecked runs the load-time streak reset
type StreakChecked struct {
	Time time.Time `json:"time"`
}

func (e StreakChecked) Type() string         { return "streak_checked" }
func (e StreakChecked) Timestamp() time.Time { return e.Time }

// MarshalText renders the collection as "inbox", "today" or "goals:yyyy-MM-dd"
func (c Collection) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCollection is the inverse of Collection.String
func ParseCollection(s string) (Collection, error) {
	switch {
	case s == "inbox":
		return Inbox(), nil
	case s == "today":
		return Today(), nil
	case strings.HasPrefix(s, "goals:"):
		key := strings.TrimPrefix(s, "goals:")
		if _, err := ParseDateKey(key, time.UTC); err != nil {
			return Collection{}, err
		}
		return GoalsOnKey(key), nil
	}
	return Collection{}, fmt.Errorf("unknown collection %q", s)
}

// UnmarshalText is the inverse of MarshalText
func (c *Collection) UnmarshalText(text []byte) error {
	parsed, err := ParseCollection(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
