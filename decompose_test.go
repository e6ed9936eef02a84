package simplecal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecompose_Success(t *testing.T) {
	s, _, _ := newTestStore(t)
	before, _ := s.AddInboxTask("Call mom")
	big, _ := s.AddInboxTask("Plan entire company offsite")
	after, _ := s.AddInboxTask("Buy milk")
	mock := &MockDecomposer{Subtasks: []string{"Book venue", "Invite list"}}

	err := s.Decompose(context.Background(), mock, big.ID)
	require.NoError(t, err)

	var inbox []string
	for _, e := range s.InboxEntries() {
		inbox = append(inbox, e.Text)
		assert.NotEqual(t, big.ID, e.ID)
	}
	assert.Equal(t, []string{before.Text, "📝 Book venue", "📝 Invite list", after.Text}, inbox)

	today := s.TodayEntries()
	require.Len(t, today, 1)
	assert.Equal(t, "✅ Plan entire company offsite", today[0].Text)
	assert.True(t, today[0].IsCompleted)

	assert.Equal(t, 1, mock.CallCount)
	assert.Equal(t, []string{"Plan entire company offsite"}, mock.Prompts)
	// The logged "✅" entry is not a completion
	assert.Equal(t, 0, s.Stats().TotalTasksCompleted)
}

func TestDecompose_FailureLeavesStateUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		mock  *MockDecomposer
		check func(t *testing.T, err error)
	}{
		{
			name: "network error is wrapped",
			mock: &MockDecomposer{Err: errors.New("connection refused")},
			check: func(t *testing.T, err error) {
				var decErr *DecompositionError
				require.ErrorAs(t, err, &decErr)
				assert.Contains(t, err.Error(), "connection refused")
			},
		},
		{
			name: "missing credentials pass through",
			mock: &MockDecomposer{Err: ErrCredentialsMissing()},
			check: func(t *testing.T, err error) {
				var cfgErr *ConfigurationError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, "credentials missing", cfgErr.Reason)
			},
		},
		{
			name: "empty result",
			mock: &MockDecomposer{Subtasks: []string{"", "  "}},
			check: func(t *testing.T, err error) {
				var decErr *DecompositionError
				require.ErrorAs(t, err, &decErr)
				assert.Equal(t, "no subtasks returned", decErr.Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo, _ := newTestStore(t)
			e, _ := s.AddInboxTask("Plan entire company offsite")
			snap := s.Snapshot()
			saves := repo.Saves

			err := s.Decompose(context.Background(), tt.mock, e.ID)

			tt.check(t, err)
			assert.Equal(t, snap, s.Snapshot())
			assert.Equal(t, saves, repo.Saves)
		})
	}
}

func TestDecompose_UnknownEntry(t *testing.T) {
	s, _, _ := newTestStore(t)
	mock := &MockDecomposer{Subtasks: []string{"x"}}

	err := s.Decompose(context.Background(), mock, "missing")

	var decErr *DecompositionError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, 0, mock.CallCount)
}

func TestDecompose_ShortTextIsAllowed(t *testing.T) {
	s, _, _ := newTestStore(t)
	e, _ := s.AddInboxTask("Taxes")
	assert.False(t, ShouldOfferDecomposition(e.Text))

	err := s.Decompose(context.Background(), &MockDecomposer{Subtasks: []string{"Find forms"}}, e.ID)

	require.NoError(t, err)
	assert.Equal(t, "📝 Find forms", s.InboxEntries()[0].Text)
}

func TestDecompose_OriginalRemovedDuringRequest(t *testing.T) {
	s, _, _ := newTestStore(t)
	e, _ := s.AddInboxTask("Plan entire company offsite")
	s.AddInboxTask("Other")

	d := DecomposerFunc(func(ctx context.Context, text string) ([]string, error) {
		// The user deletes the entry while the request is in flight
		require.NoError(t, s.DeleteAt(Inbox(), []int{0}))
		return []string{"Book venue"}, nil
	})

	require.NoError(t, s.Decompose(context.Background(), d, e.ID))

	inbox := s.InboxEntries()
	require.Len(t, inbox, 2)
	assert.Equal(t, "Other", inbox[0].Text)
	assert.Equal(t, "📝 Book venue", inbox[1].Text)
	assert.Len(t, s.TodayEntries(), 1)
}

func TestDecompose_ConcurrentRequestsForDifferentTasks(t *testing.T) {
	s, _, _ := newTestStore(t)
	a, _ := s.AddInboxTask("Task A long text")
	b, _ := s.AddInboxTask("Task B long text")

	started := make(chan struct{}, 2)
	release := make(chan struct{})
	d := DecomposerFunc(func(ctx context.Context, text string) ([]string, error) {
		started <- struct{}{}
		<-release
		return []string{text + " sub"}, nil
	})

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, id := range []string{a.ID, b.ID} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			errs <- s.Decompose(context.Background(), d, id)
		}(id)
	}
	<-started
	<-started

	// Unrelated changes while both requests are in flight
	c, _ := s.AddInboxTask("C")
	s.CompleteTask(c.ID)

	close(release)
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var inbox []string
	for _, e := range s.InboxEntries() {
		inbox = append(inbox, e.Text)
	}
	assert.Equal(t, []string{"📝 Task A long text sub", "📝 Task B long text sub", "C"}, inbox)

	var today []string
	for _, e := range s.TodayEntries() {
		today = append(today, e.Text)
		assert.True(t, e.IsCompleted)
	}
	assert.ElementsMatch(t, []string{"✅ Task A long text", "✅ Task B long text"}, today)
	assert.Equal(t, 1, s.Stats().TotalTasksCompleted)
}

func TestDecomposeGoal(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.AddGoal(testNow, "Existing", CategoryGoal)

	err := s.DecomposeGoal(context.Background(), &MockDecomposer{Subtasks: []string{"Draft", "Review"}}, testNow, "Write launch post")
	require.NoError(t, err)

	var texts []string
	for _, g := range s.GoalsFor(testNow) {
		texts = append(texts, g.Text)
	}
	assert.Equal(t, []string{"🎯 Existing", "✅ Write launch post", "📝 Draft", "📝 Review"}, texts)
	assert.True(t, s.GoalsFor(testNow)[1].IsCompleted)
}

func TestDecomposeGoal_BlankText(t *testing.T) {
	s, _, _ := newTestStore(t)
	mock := &MockDecomposer{Subtasks: []string{"x"}}

	err := s.DecomposeGoal(context.Background(), mock, testNow, "   ")

	var decErr *DecompositionError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, 0, mock.CallCount)
}

func TestShouldOfferDecomposition(t *testing.T) {
	assert.False(t, ShouldOfferDecomposition("0123456789"))
	assert.True(t, ShouldOfferDecomposition("0123456789a"))
	assert.False(t, ShouldOfferDecomposition("  "+strings.Repeat("é", 10)+"  "))
}
