package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmizzell/simplecal"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type testAPI struct {
	store *simplecal.Store
	repo  *simplecal.MemoryRepository
	mock  *simplecal.MockDecomposer
	srv   *httptest.Server
}

func newTestAPI(t *testing.T, apiKey string) *testAPI {
	t.Helper()
	repo := simplecal.NewMemoryRepository(nil)
	store, err := simplecal.NewStore(repo, simplecal.WithClock(simplecal.NewFixedClock(testNow).Now))
	require.NoError(t, err)

	mock := &simplecal.MockDecomposer{Subtasks: []string{"Book venue", "Invite list"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(store, mock, apiKey, logger))
	t.Cleanup(srv.Close)

	return &testAPI{store: store, repo: repo, mock: mock, srv: srv}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, a.srv.URL+path, r)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t, "secret")

	resp := a.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	a.repo.Err = errors.New("disk full")
	a.store.AddInboxTask("x")
	resp = a.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestBearerAuth(t *testing.T) {
	a := newTestAPI(t, "secret")

	resp := a.do(t, http.MethodGet, "/inbox", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, _ := http.NewRequest(http.MethodGet, a.srv.URL+"/inbox", nil)
	req.Header.Set("Authorization", "Bearer secret")
	resp, err := a.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInboxFlow(t *testing.T) {
	a := newTestAPI(t, "")

	resp := a.do(t, http.MethodPost, "/inbox", textRequest{Text: "Write report"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	entry := decode[simplecal.Entry](t, resp)
	assert.Equal(t, "Write report", entry.Text)

	resp = a.do(t, http.MethodPost, "/inbox", textRequest{Text: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/inbox/"+entry.ID+"/today", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	today := decode[[]simplecal.Entry](t, resp)
	require.Len(t, today, 1)

	// Already moved
	resp = a.do(t, http.MethodPost, "/inbox/"+entry.ID+"/today", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	start := testNow.Add(time.Hour)
	resp = a.do(t, http.MethodPut, "/today/"+entry.ID+"/start-time", startTimeRequest{StartTime: &start})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	today = decode[[]simplecal.Entry](t, resp)
	require.NotNil(t, today[0].StartTime)
	assert.True(t, start.Equal(*today[0].StartTime))

	resp = a.do(t, http.MethodPost, "/tasks/"+entry.ID+"/complete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[simplecal.Entry](t, resp).IsCompleted)

	resp = a.do(t, http.MethodGet, "/stats", nil)
	stats := decode[simplecal.Stats](t, resp)
	assert.Equal(t, 1, stats.TotalTasksCompleted)
	assert.Equal(t, 1, stats.CurrentStreak)

	resp = a.do(t, http.MethodPost, "/tasks/missing/complete", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteInvalidIndex(t *testing.T) {
	a := newTestAPI(t, "")
	a.store.AddInboxTask("A")

	resp := a.do(t, http.MethodDelete, "/inbox", indicesRequest{Indices: []int{0, 3}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Len(t, a.store.InboxEntries(), 1)

	resp = a.do(t, http.MethodDelete, "/inbox", indicesRequest{Indices: []int{0}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, a.store.InboxEntries())
}

func TestDecompose(t *testing.T) {
	a := newTestAPI(t, "")
	e, _ := a.store.AddInboxTask("Plan entire company offsite")

	resp := a.do(t, http.MethodPost, "/inbox/"+e.ID+"/decompose", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[decomposeResponse](t, resp)
	require.Len(t, out.Inbox, 2)
	assert.Equal(t, "📝 Book venue", out.Inbox[0].Text)
	require.Len(t, out.Today, 1)
	assert.Equal(t, "✅ Plan entire company offsite", out.Today[0].Text)
}

func TestDecompose_ErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"upstream failure", errors.New("connection reset"), http.StatusBadGateway},
		{"missing credentials", simplecal.ErrCredentialsMissing(), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAPI(t, "")
			a.mock.Err = tt.err
			e, _ := a.store.AddInboxTask("Plan entire company offsite")

			resp := a.do(t, http.MethodPost, "/inbox/"+e.ID+"/decompose", nil)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.NotEmpty(t, decode[errorResponse](t, resp).Error)
			assert.Len(t, a.store.InboxEntries(), 1)
		})
	}
}

func TestDecompose_NoDecomposer(t *testing.T) {
	store, err := simplecal.NewStore(simplecal.NewMemoryRepository(nil))
	require.NoError(t, err)
	srv := httptest.NewServer(NewRouter(store, nil, "", slog.New(slog.NewTextHandler(io.Discard, nil))))
	defer srv.Close()
	e, _ := store.AddInboxTask("Plan entire company offsite")

	resp, err := srv.Client().Post(srv.URL+"/inbox/"+e.ID+"/decompose", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestGoals(t *testing.T) {
	a := newTestAPI(t, "")

	resp := a.do(t, http.MethodPost, "/goals/2026-03-20", textRequest{Text: "Pay rent", Category: "reminder"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	goal := decode[simplecal.Entry](t, resp)
	assert.Equal(t, "⏰ Pay rent", goal.Text)

	resp = a.do(t, http.MethodPost, "/goals/2026-03-20/"+goal.ID+"/priority", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decode[simplecal.Entry](t, resp).IsPriority)

	resp = a.do(t, http.MethodPost, "/goals/2026-03-21/"+goal.ID+"/priority", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = a.do(t, http.MethodPost, "/goals/2026-03-20/decompose", textRequest{Text: "Launch"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	goals := decode[[]simplecal.Entry](t, resp)
	require.Len(t, goals, 4)
	assert.Equal(t, "✅ Launch", goals[1].Text)

	resp = a.do(t, http.MethodGet, "/goals/2026-03-20", nil)
	assert.Len(t, decode[[]simplecal.Entry](t, resp), 4)

	resp = a.do(t, http.MethodDelete, "/goals/2026-03-20", indicesRequest{Indices: []int{0, 1, 2, 3}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]simplecal.Entry](t, resp))

	resp = a.do(t, http.MethodGet, "/goals/not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCalendarMonth(t *testing.T) {
	a := newTestAPI(t, "")
	a.store.AddGoal(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), "Trip", simplecal.CategoryGoal)

	resp := a.do(t, http.MethodGet, "/calendar/2026-03?week_start=monday", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	grid := decode[monthResponse](t, resp)
	assert.Equal(t, "March 2026", grid.Title)
	assert.Equal(t, 6, grid.LeadingBlanks)
	require.Len(t, grid.Days, 31)
	assert.True(t, grid.Days[19].HasGoals)
	assert.True(t, grid.Days[13].IsToday)

	resp = a.do(t, http.MethodGet, "/calendar/March", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFocusSessions(t *testing.T) {
	a := newTestAPI(t, "")

	a.do(t, http.MethodPost, "/focus-sessions", nil)
	resp := a.do(t, http.MethodPost, "/focus-sessions", nil)

	assert.Equal(t, 2, decode[simplecal.Stats](t, resp).TotalFocusSessions)
}

func TestSnapshot(t *testing.T) {
	a := newTestAPI(t, "")
	a.store.AddInboxTask("Idea")

	resp := a.do(t, http.MethodGet, "/snapshot", nil)
	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	for _, key := range []string{"goalsByDate", "brainDump", "todaysFocus", "totalTasksCompleted", "totalFocusSessions", "streakData"} {
		assert.Contains(t, raw, key)
	}
}

func TestEventStream(t *testing.T) {
	a := newTestAPI(t, "")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := a.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, ": connected\n", line)

	a.store.AddInboxTask("Streamed")

	var event, data string
	for event == "" || data == "" {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event: "))
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		}
	}
	assert.Equal(t, "inbox_task_added", event)

	var msg struct {
		Type  string `json:"type"`
		Event struct {
			Entry simplecal.Entry `json:"entry"`
		} `json:"event"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &msg))
	assert.Equal(t, "Streamed", msg.Event.Entry.Text)
}
