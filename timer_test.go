package simplecal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_Transitions(t *testing.T) {
	timer := NewTimer(0)
	assert.Equal(t, TimerIdle, timer.State())
	assert.Equal(t, DefaultFocusDuration, timer.Remaining())

	// Ticks while idle do nothing
	timer.Tick()
	assert.Equal(t, DefaultFocusDuration, timer.Remaining())

	assert.Equal(t, TimerRunning, timer.Toggle())
	timer.Tick()
	timer.Tick()
	assert.Equal(t, DefaultFocusDuration-2*time.Second, timer.Remaining())

	assert.Equal(t, TimerPaused, timer.Toggle())
	timer.Tick()
	assert.Equal(t, DefaultFocusDuration-2*time.Second, timer.Remaining())

	assert.Equal(t, TimerRunning, timer.Toggle())
	timer.Reset()
	assert.Equal(t, TimerIdle, timer.State())
	assert.Equal(t, DefaultFocusDuration, timer.Remaining())
}

func TestTimer_CompletesSession(t *testing.T) {
	s, _, _ := newTestStore(t)
	var calls []string
	timer := NewTimer(3*time.Second,
		WithSessionCompleted(func() {
			calls = append(calls, "completed")
			s.RecordFocusSession()
		}),
		WithDismiss(func() { calls = append(calls, "dismiss") }),
	)

	timer.Toggle()
	assert.False(t, timer.Tick())
	assert.False(t, timer.Tick())
	assert.True(t, timer.Tick())

	assert.Equal(t, TimerIdle, timer.State())
	assert.Equal(t, 3*time.Second, timer.Remaining())
	assert.Equal(t, []string{"completed", "dismiss"}, calls)
	assert.Equal(t, 1, s.Stats().TotalFocusSessions)
}

func TestTimer_Run(t *testing.T) {
	completed := 0
	timer := NewTimer(2*time.Second, WithSessionCompleted(func() { completed++ }))
	timer.Toggle()

	ticks := make(chan time.Time, 2)
	ticks <- time.Now()
	ticks <- time.Now()

	require.NoError(t, timer.Run(context.Background(), ticks))
	assert.Equal(t, 1, completed)
}

func TestTimer_RunCancelled(t *testing.T) {
	timer := NewTimer(time.Minute)
	timer.Toggle()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := timer.Run(ctx, make(chan time.Time))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, TimerRunning, timer.State())
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "25:00", FormatRemaining(DefaultFocusDuration))
	assert.Equal(t, "04:05", FormatRemaining(4*time.Minute+5*time.Second))
	assert.Equal(t, "00:00", FormatRemaining(-time.Second))
	assert.Equal(t, "idle", TimerIdle.String())
	assert.Equal(t, "paused", TimerPaused.String())
}
