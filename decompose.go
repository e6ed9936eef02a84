package simplecal

import (
	"context"
	"errors"
	"strings"
	"time"
)

// DecomposeMinLength is the text length above which a UI offers decomposition.
// It is a UI hint only: Decompose accepts any non-blank text.
const DecomposeMinLength = 10

// ShouldOfferDecomposition reports whether a UI should show the decompose action
func ShouldOfferDecomposition(text string) bool {
	return len([]rune(strings.TrimSpace(text))) > DecomposeMinLength
}

// Decomposer splits a task description into subtask texts (allows mocking in tests)
type Decomposer interface {
	Decompose(ctx context.Context, text string) ([]string, error)
}

// DecomposerFunc adapts a function to Decomposer
type DecomposerFunc func(ctx context.Context, text string) ([]string, error)

func (f DecomposerFunc) Decompose(ctx context.Context, text string) ([]string, error) {
	return f(ctx, text)
}

// Decompose asks d to split the inbox entry id into subtasks. On success the
// entry is replaced in place by "📝 " subtasks and a completed "✅ " copy is
// appended to today's focus. On failure nothing changes.
//
// The store is not locked while d runs, and the result is applied to the
// entry captured by id, so concurrent decompositions do not interfere.
func (s *Store) Decompose(ctx context.Context, d Decomposer, id string) error {
	s.mu.Lock()
	i := indexOf(s.snap.BrainDump, id)
	var original Entry
	if i >= 0 {
		original = s.snap.BrainDump[i].clone()
	}
	s.mu.Unlock()

	if i < 0 {
		return &DecompositionError{Message: "task not found in inbox"}
	}

	subtasks, err := s.requestSubtasks(ctx, d, original.Text)
	if err != nil {
		return err
	}

	now := s.clock()
	completed := NewEntry(DecomposedPrefix+original.Text, now)
	completed.IsCompleted = true

	return s.Process(&TaskDecomposed{
		EntryID:   original.ID,
		Completed: completed,
		Subtasks:  subtaskEntries(subtasks, now),
		Time:      now,
	})
}

// DecomposeGoal splits text into subtasks and appends a completed "✅ " entry
// followed by the "📝 " subtasks to the goal list of date's day
func (s *Store) DecomposeGoal(ctx context.Context, d Decomposer, date time.Time, text string) error {
	text = strings.TrimSpace(text)
	subtasks, err := s.requestSubtasks(ctx, d, text)
	if err != nil {
		return err
	}

	now := s.clock()
	completed := NewEntry(DecomposedPrefix+text, now)
	completed.IsCompleted = true

	return s.Process(&GoalDecomposed{
		DateKey:   DateKey(date),
		Completed: completed,
		Subtasks:  subtaskEntries(subtasks, now),
		Time:      now,
	})
}

func (s *Store) requestSubtasks(ctx context.Context, d Decomposer, text string) ([]string, error) {
	if isBlank(text) {
		return nil, &DecompositionError{Message: "task text is empty"}
	}

	raw, err := d.Decompose(ctx, text)
	if err != nil {
		s.logger.Warn("decomposition failed", "error", err)
		var cfgErr *ConfigurationError
		var decErr *DecompositionError
		if errors.As(err, &cfgErr) || errors.As(err, &decErr) {
			return nil, err
		}
		return nil, &DecompositionError{Message: "request failed", Err: err}
	}

	var subtasks []string
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			subtasks = append(subtasks, t)
		}
	}
	if len(subtasks) == 0 {
		return nil, &DecompositionError{Message: "no subtasks returned"}
	}
	return subtasks, nil
}

func subtaskEntries(texts []string, now time.Time) []Entry {
	entries := make([]Entry, len(texts))
	for i, t := range texts {
		entries[i] = NewEntry(SubtaskPrefix+t, now)
	}
	return entries
}
