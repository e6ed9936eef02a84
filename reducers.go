package simplecal

import (
	"fmt"
	"sort"
)

// reduce applies event to s and reports whether anything changed.
// An error means s was left untouched.
func reduce(s *Snapshot, event Event) (bool, error) {
	switch e := event.(type) {
	case *InboxTaskAdded:
		return reduceInboxTaskAdded(s, e), nil
	case *GoalAdded:
		return reduceGoalAdded(s, e), nil
	case *TaskMovedToToday:
		return reduceTaskMovedToToday(s, e), nil
	case *TaskCompleted:
		return reduceTaskCompleted(s, e), nil
	case *StartTimeUpdated:
		return reduceStartTimeUpdated(s, e), nil
	case *EntriesDeleted:
		return reduceEntriesDeleted(s, e)
	case *PriorityToggled:
		return reducePriorityToggled(s, e), nil
	case *FocusSessionCompleted:
		s.TotalFocusSessions++
		return true, nil
	case *TaskDecomposed:
		return reduceTaskDecomposed(s, e), nil
	case *GoalDecomposed:
		return reduceGoalDecomposed(s, e), nil
	case *StreakChecked:
		return s.StreakData.OnLoad(e.Time), nil
	default:
		return false, fmt.Errorf("unknown event type %q", event.Type())
	}
}

func reduceInboxTaskAdded(s *Snapshot, e *InboxTaskAdded) bool {
	if isBlank(e.Entry.Text) {
		return false
	}
	s.BrainDump = append(s.BrainDump, e.Entry.clone())
	return true
}

func reduceGoalAdded(s *Snapshot, e *GoalAdded) bool {
	if isBlank(e.Entry.Text) {
		return false
	}
	s.GoalsByDate[e.DateKey] = append(s.goals(e.DateKey), e.Entry.clone())
	return true
}

func reduceTaskMovedToToday(s *Snapshot, e *TaskMovedToToday) bool {
	i := indexOf(s.BrainDump, e.EntryID)
	if i < 0 {
		return false
	}
	entry := s.BrainDump[i]
	s.BrainDump = append(s.BrainDump[:i:i], s.BrainDump[i+1:]...)
	s.TodaysFocus = append(s.TodaysFocus, entry)
	return true
}

func reduceTaskCompleted(s *Snapshot, e *TaskCompleted) bool {
	c, i, ok := s.find(e.EntryID)
	if !ok {
		return false
	}
	entries := s.entries(c)
	if entries[i].IsCompleted {
		return false
	}
	entries[i].IsCompleted = true
	s.TotalTasksCompleted++
	s.StreakData.OnTaskCompleted(e.Time)
	return true
}

func reduceStartTimeUpdated(s *Snapshot, e *StartTimeUpdated) bool {
	i := indexOf(s.TodaysFocus, e.EntryID)
	if i < 0 {
		return false
	}
	if e.StartTime != nil {
		st := *e.StartTime
		s.TodaysFocus[i].StartTime = &st
	} else {
		s.TodaysFocus[i].StartTime = nil
	}
	sortByStartTime(s.TodaysFocus)
	return true
}

// sortByStartTime orders entries ascending by start time, untimed entries last
func sortByStartTime(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].StartTime, entries[j].StartTime
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

func reduceEntriesDeleted(s *Snapshot, e *EntriesDeleted) (bool, error) {
	entries := s.entries(e.Collection)

	// Validate everything before touching the collection
	drop := make(map[int]bool, len(e.Indices))
	for _, idx := range e.Indices {
		if idx < 0 || idx >= len(entries) {
			return false, &InvalidIndexError{Index: idx, Length: len(entries)}
		}
		drop[idx] = true
	}
	if len(drop) == 0 {
		return false, nil
	}

	kept := make([]Entry, 0, len(entries)-len(drop))
	for i, entry := range entries {
		if !drop[i] {
			kept = append(kept, entry)
		}
	}
	s.setEntries(e.Collection, kept)
	return true, nil
}

func reducePriorityToggled(s *Snapshot, e *PriorityToggled) bool {
	entries := s.GoalsByDate[e.DateKey]
	i := indexOf(entries, e.EntryID)
	if i < 0 {
		return false
	}
	entries[i].IsPriority = !entries[i].IsPriority
	return true
}

func reduceTaskDecomposed(s *Snapshot, e *TaskDecomposed) bool {
	subtasks := cloneEntries(e.Subtasks)
	if i := indexOf(s.BrainDump, e.EntryID); i >= 0 {
		inbox := make([]Entry, 0, len(s.BrainDump)-1+len(subtasks))
		inbox = append(inbox, s.BrainDump[:i]...)
		inbox = append(inbox, subtasks...)
		inbox = append(inbox, s.BrainDump[i+1:]...)
		s.BrainDump = inbox
	} else {
		// The original vanished while the request was in flight
		s.BrainDump = append(s.BrainDump, subtasks...)
	}
	s.TodaysFocus = append(s.TodaysFocus, e.Completed.clone())
	return true
}

func reduceGoalDecomposed(s *Snapshot, e *GoalDecomposed) bool {
	entries := append(s.goals(e.DateKey), e.Completed.clone())
	entries = append(entries, cloneEntries(e.Subtasks)...)
	s.GoalsByDate[e.DateKey] = entries
	return true
}
