package simplecal

import "time"

// Streak counts consecutive calendar days with at least one completed task
type Streak struct {
	CurrentStreak      int        `json:"currentStreak"`
	LastCompletionDate *time.Time `json:"lastCompletionDate"`
}

func (s Streak) clone() Streak {
	if s.LastCompletionDate != nil {
		last := *s.LastCompletionDate
		s.LastCompletionDate = &last
	}
	return s
}

// OnLoad zeroes the streak when the last completion is older than yesterday.
// It reports whether anything changed. LastCompletionDate is left alone.
func (s *Streak) OnLoad(now time.Time) bool {
	if s.LastCompletionDate == nil {
		return false
	}
	last := *s.LastCompletionDate
	if sameDay(last, now) || isYesterday(last, now) {
		return false
	}
	if s.CurrentStreak == 0 {
		return false
	}
	s.CurrentStreak = 0
	return true
}

// OnTaskCompleted advances the streak for a completion at now.
// Completions on a day already counted do not increment it again.
func (s *Streak) OnTaskCompleted(now time.Time) {
	if s.LastCompletionDate != nil {
		last := *s.LastCompletionDate
		switch {
		case sameDay(last, now):
			return
		case isYesterday(last, now):
			s.CurrentStreak++
		default:
			s.CurrentStreak = 1
		}
	} else {
		s.CurrentStreak = 1
	}
	s.LastCompletionDate = &now
}

// sameDay compares calendar days in the location of ref
func sameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func isYesterday(t, now time.Time) bool {
	return sameDay(t, now.AddDate(0, 0, -1))
}
