package common

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/matst80/slask-view/pkg/logger"
	"github.com/matst80/slask-view/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	got, err := Guard([]int{}, func() []int { return []int{1, 2} })
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	got, err = Guard([]int{}, func() []int { panic("comparator exploded") })
	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "comparator exploded", panicErr.Value)
	assert.Equal(t, []int{}, got)

	assert.NoError(t, GuardDo(func() {}))
	assert.EqualError(t, GuardDo(func() { panic(errors.New("boom")) }), "panic: boom")
}

func TestRecover(t *testing.T) {
	h := Recover(logger.Nop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("bad predicate")
	}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

type sessionTracker struct {
	mu       sync.Mutex
	sessions []string
}

func (s *sessionTracker) TrackSession(sessionId string, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, sessionId)
}

func (s *sessionTracker) TrackView(string, types.ViewEvent) {}

func (s *sessionTracker) Close() error { return nil }

func TestHandleSessionCookie(t *testing.T) {
	trk := &sessionTracker{}

	rec := httptest.NewRecorder()
	sessionId := HandleSessionCookie(trk, rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(sessionId)
	require.NoError(t, err)
	assert.Equal(t, []string{sessionId}, trk.sessions)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionId, cookies[0].Value)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sessionId})
	rec = httptest.NewRecorder()
	assert.Equal(t, sessionId, HandleSessionCookie(trk, rec, req))
	assert.Empty(t, rec.Result().Cookies())
	assert.Len(t, trk.sessions, 1)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "12345"})
	assert.NotEqual(t, "12345", HandleSessionCookie(nil, httptest.NewRecorder(), req))
}

func TestJsonHandler(t *testing.T) {
	h := JsonHandler(nil, logger.Nop(), func(w http.ResponseWriter, r *http.Request, sessionId string) error {
		switch r.URL.Query().Get("fail") {
		case "missing":
			return NewHttpError(http.StatusNotFound, errors.New("no such view"))
		case "yes":
			return errors.New("broken")
		}
		return WriteJson(w, http.StatusOK, map[string]any{"session": sessionId != ""})
	})

	tests := []struct {
		name   string
		url    string
		status int
		body   string
	}{
		{"ok", "/", http.StatusOK, `{"session":true}`},
		{"http error", "/?fail=missing", http.StatusNotFound, `{"error":"no such view"}`},
		{"plain error", "/?fail=yes", http.StatusInternalServerError, `{"error":"broken"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestJsonHandlerOptions(t *testing.T) {
	called := false
	h := JsonHandler(nil, logger.Nop(), func(http.ResponseWriter, *http.Request, string) error {
		called = true
		return nil
	})
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://shop.example")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestQueueHandler(t *testing.T) {
	var mu sync.Mutex
	var batches [][]int
	q := NewQueueHandler(func(items []int) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, append([]int{}, items...))
	}, 2)

	q.Add(1, 2, 3)
	q.Add(4)
	q.Close()
	q.Close()

	mu.Lock()
	defer mu.Unlock()
	var all []int
	for _, b := range batches {
		assert.LessOrEqual(t, len(b), 2)
		all = append(all, b...)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, all)
}

func TestRunHooks(t *testing.T) {
	var order []int
	hooks := []ShutdownHook{
		func(context.Context) error { order = append(order, 1); return errors.New("ignored") },
		nil,
		func(ctx context.Context) error {
			<-ctx.Done()
			order = append(order, 2)
			return ctx.Err()
		},
		func(context.Context) error { order = append(order, 3); return nil },
	}

	runHooks(t.Context(), logger.Nop(), 10*time.Millisecond, hooks)

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestNewServerWithTimeouts(t *testing.T) {
	srv := NewServerWithTimeouts(nil, TimeoutConfig{ReadHeader: time.Second, Idle: time.Minute})

	assert.Equal(t, time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, time.Minute, srv.IdleTimeout)
}
