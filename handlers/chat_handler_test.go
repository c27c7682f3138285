package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/config"
	"github.com/halilcengel/note.verse.backend/services/chat"
	"github.com/halilcengel/note.verse.backend/utils"
)

// flushRecorder records the byte segments delivered between flush calls,
// so tests can assert chunk-by-chunk delivery rather than just the final
// body.
type flushRecorder struct {
	*httptest.ResponseRecorder

	mu       sync.Mutex
	pending  bytes.Buffer
	segments []string
}

func newFlushRecorder() *flushRecorder {
	return &flushRecorder{ResponseRecorder: httptest.NewRecorder()}
}

func (f *flushRecorder) Write(p []byte) (int, error) {
	f.mu.Lock()
	f.pending.Write(p)
	f.mu.Unlock()
	return f.ResponseRecorder.Write(p)
}

func (f *flushRecorder) Flush() {
	f.mu.Lock()
	if f.pending.Len() > 0 {
		f.segments = append(f.segments, f.pending.String())
		f.pending.Reset()
	}
	f.mu.Unlock()
	f.ResponseRecorder.Flush()
}

func (f *flushRecorder) Segments() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.segments...)
}

func chatBody(threadID string) string {
	return `{"message":"7 kasımda hangi sınavlar var ?","thread_id":"` + threadID + `",` +
		`"url":"https://eem.bakircay.edu.tr","school":"Izmir Bakircay Universitesi",` +
		`"department":"Elektrik Elektronik Mühendisliği"}`
}

func newChatHandler(t *testing.T, serviceURL string) *ChatHandler {
	t.Helper()
	client := chat.NewClient(config.ChatConfig{
		ServiceURL:     serviceURL,
		ConnectTimeout: 5 * time.Second,
	}, zap.NewNop())
	return NewChatHandler(client, zap.NewNop())
}

func TestHandleChat_StreamsChunksAcrossFlushes(t *testing.T) {
	release := make(chan string)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for chunk := range release {
			_, _ = io.WriteString(w, chunk)
			flusher.Flush()
		}
	}))
	defer upstream.Close()

	handler := newChatHandler(t, upstream.URL)
	rec := newFlushRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(chatBody("test-4")))

	done := make(chan struct{})
	go func() {
		handler.HandleChat(rec, req)
		close(done)
	}()

	for _, chunk := range []string{"a", "bc", "d"} {
		release <- chunk
		want := chunk
		require.Eventually(t, func() bool {
			segs := rec.Segments()
			return len(segs) > 0 && segs[len(segs)-1] == want
		}, time.Second, time.Millisecond, "chunk %q was not flushed on its own", chunk)
	}
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not return after upstream closed")
	}

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "abcd", rec.Body.String())
	assert.Equal(t, []string{"a", "bc", "d"}, rec.Segments())
}

func TestHandleChat_ForwardsBodyVerbatim(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotContentType = r.Header.Get("Content-Type")
		_, _ = io.WriteString(w, "ok")
	}))
	defer upstream.Close()

	handler := newChatHandler(t, upstream.URL)
	rec := newFlushRecorder()
	body := chatBody("test-4")
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))

	handler.HandleChat(rec, req)

	assert.Equal(t, body, string(gotBody))
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHandleChat_UpstreamErrorPassThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "thread not found")
	}))
	defer upstream.Close()

	handler := newChatHandler(t, upstream.URL)
	rec := newFlushRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(chatBody("test-4")))

	handler.HandleChat(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Chat service error", resp.Message)
	assert.Equal(t, "thread not found", resp.Details)
}

func TestHandleChat_UpstreamUnreachable(t *testing.T) {
	// Grab a port that is guaranteed closed
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	handler := newChatHandler(t, deadURL)
	rec := newFlushRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(chatBody("test-4")))

	handler.HandleChat(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Failed to communicate with chat service", resp.Message)
	assert.NotEmpty(t, resp.Details)
}

func TestHandleChat_MidStreamFailureClosesAbruptly(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "partial")
		w.(http.Flusher).Flush()
		panic(http.ErrAbortHandler)
	}))
	defer upstream.Close()

	handler := newChatHandler(t, upstream.URL)
	rec := newFlushRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(chatBody("test-4")))

	done := make(chan struct{})
	go func() {
		handler.HandleChat(rec, req)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after upstream died")
	}

	// Whatever was flushed before the failure stays delivered; nothing
	// error-shaped is appended after it.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestHandleChat_ClientDisconnectStopsUpstreamRead(t *testing.T) {
	upstreamSawCancel := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "a")
		w.(http.Flusher).Flush()
		<-r.Context().Done()
		close(upstreamSawCancel)
	}))
	defer upstream.Close()

	handler := newChatHandler(t, upstream.URL)
	rec := newFlushRecorder()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(chatBody("test-4"))).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		handler.HandleChat(rec, req)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(rec.Segments()) == 1
	}, time.Second, time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler kept reading after client disconnect")
	}

	select {
	case <-upstreamSawCancel:
	case <-time.After(time.Second):
		t.Fatal("upstream connection was not released after client disconnect")
	}

	assert.Equal(t, "a", rec.Body.String())
}

func TestHandleChat_RejectsInvalidPayload(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for an invalid payload")
	}))
	defer upstream.Close()

	handler := newChatHandler(t, upstream.URL)

	tests := []struct {
		name string
		body string
	}{
		{"missing fields", `{"message":"hi"}`},
		{"bad url", `{"message":"hi","thread_id":"t-1","url":"not a url","school":"s","department":"d"}`},
		{"malformed json", `{"message": nope`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newFlushRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))

			handler.HandleChat(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp utils.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "error", resp.Status)
		})
	}
}
