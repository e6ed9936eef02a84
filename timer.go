package simplecal

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultFocusDuration is the classic 25 minute Pomodoro
const DefaultFocusDuration = 25 * time.Minute

// TimerState of a Pomodoro countdown
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
	TimerPaused
)

func (s TimerState) String() string {
	switch s {
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	default:
		return "idle"
	}
}

// Timer is a Pomodoro countdown advanced one second per Tick
type Timer struct {
	mu        sync.Mutex
	duration  time.Duration
	remaining time.Duration
	state     TimerState

	onSessionCompleted func()
	onDismiss          func()
}

// TimerOption configures a Timer
type TimerOption func(*Timer)

// WithSessionCompleted is called when a countdown reaches zero,
// typically with Store.RecordFocusSession
func WithSessionCompleted(fn func()) TimerOption {
	return func(t *Timer) { t.onSessionCompleted = fn }
}

// WithDismiss is called after the session-completed callback
func WithDismiss(fn func()) TimerOption {
	return func(t *Timer) { t.onDismiss = fn }
}

// NewTimer creates an idle timer. A non-positive duration means DefaultFocusDuration.
func NewTimer(duration time.Duration, opts ...TimerOption) *Timer {
	if duration <= 0 {
		duration = DefaultFocusDuration
	}
	t := &Timer{duration: duration, remaining: duration}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Toggle starts or resumes a stopped timer and pauses a running one
func (t *Timer) Toggle() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == TimerRunning {
		t.state = TimerPaused
	} else {
		t.state = TimerRunning
	}
	return t.state
}

// Reset stops the timer and restores the full duration
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = TimerIdle
	t.remaining = t.duration
}

// Tick advances a running timer by one second. It returns true when this
// tick finished the session.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	if t.state != TimerRunning {
		t.mu.Unlock()
		return false
	}
	t.remaining -= time.Second
	if t.remaining > 0 {
		t.mu.Unlock()
		return false
	}
	t.state = TimerIdle
	t.remaining = t.duration
	completed, dismiss := t.onSessionCompleted, t.onDismiss
	t.mu.Unlock()

	if completed != nil {
		completed()
	}
	if dismiss != nil {
		dismiss()
	}
	return true
}

// Run calls Tick for every value from ticks until the session completes or
// ctx is done. Pass time.NewTicker(time.Second).C in production.
func (t *Timer) Run(ctx context.Context, ticks <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			if t.Tick() {
				return nil
			}
		}
	}
}

// State returns the current state
func (t *Timer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Remaining returns the time left in the session
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Duration returns the configured session length
func (t *Timer) Duration() time.Duration {
	return t.duration
}

// FormatRemaining renders d as MM:SS
func FormatRemaining(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
