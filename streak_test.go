package simplecal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreak_OnTaskCompleted(t *testing.T) {
	day := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		streak   Streak
		expected int
	}{
		{"unset starts at one", Streak{}, 1},
		{"yesterday increments", Streak{CurrentStreak: 4, LastCompletionDate: timePtr(day.AddDate(0, 0, -1))}, 5},
		{"late last night still counts as yesterday", Streak{CurrentStreak: 2, LastCompletionDate: timePtr(time.Date(2026, 5, 9, 23, 59, 0, 0, time.UTC))}, 3},
		{"same day unchanged", Streak{CurrentStreak: 3, LastCompletionDate: timePtr(day.Add(-8 * time.Hour))}, 3},
		{"two days ago restarts", Streak{CurrentStreak: 7, LastCompletionDate: timePtr(day.AddDate(0, 0, -2))}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.streak
			s.OnTaskCompleted(day)
			assert.Equal(t, tt.expected, s.CurrentStreak)
			require.NotNil(t, s.LastCompletionDate)
			assert.True(t, sameDay(*s.LastCompletionDate, day))
		})
	}
}

func TestStreak_SameDayTwiceCountsOnce(t *testing.T) {
	var s Streak
	morning := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

	s.OnTaskCompleted(morning)
	s.OnTaskCompleted(morning.Add(6 * time.Hour))

	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, morning, *s.LastCompletionDate)
}

func TestStreak_OnLoad(t *testing.T) {
	now := time.Date(2026, 5, 10, 7, 0, 0, 0, time.UTC)

	t.Run("two days ago resets", func(t *testing.T) {
		last := now.AddDate(0, 0, -2)
		s := Streak{CurrentStreak: 5, LastCompletionDate: &last}

		assert.True(t, s.OnLoad(now))
		assert.Equal(t, 0, s.CurrentStreak)
		assert.Equal(t, last, *s.LastCompletionDate, "date is kept")
	})

	t.Run("yesterday keeps the streak", func(t *testing.T) {
		s := Streak{CurrentStreak: 5, LastCompletionDate: timePtr(now.AddDate(0, 0, -1))}

		assert.False(t, s.OnLoad(now))
		assert.Equal(t, 5, s.CurrentStreak)
	})

	t.Run("unset is untouched", func(t *testing.T) {
		s := Streak{CurrentStreak: 2}

		assert.False(t, s.OnLoad(now))
		assert.Equal(t, 2, s.CurrentStreak)
	})
}

func TestNewStore_ResetsStaleStreak(t *testing.T) {
	snap := NewSnapshot()
	snap.StreakData = Streak{CurrentStreak: 9, LastCompletionDate: timePtr(testNow.AddDate(0, 0, -2))}
	repo := NewMemoryRepository(snap)

	s, err := NewStore(repo, WithClock(NewFixedClock(testNow).Now))
	require.NoError(t, err)

	assert.Equal(t, 0, s.Stats().CurrentStreak)
	assert.Equal(t, 1, repo.Saves)
}

func TestStreak_AcrossDays(t *testing.T) {
	s, _, clock := newTestStore(t)

	for i := 0; i < 3; i++ {
		e, _ := s.AddInboxTask("Daily")
		s.CompleteTask(e.ID)
		clock.Advance(24 * time.Hour)
	}
	assert.Equal(t, 3, s.Stats().CurrentStreak)

	clock.Advance(24 * time.Hour)
	e, _ := s.AddInboxTask("After a gap")
	s.CompleteTask(e.ID)
	assert.Equal(t, 1, s.Stats().CurrentStreak)
	assert.Equal(t, 4, s.Stats().TotalTasksCompleted)
}
