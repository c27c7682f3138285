package chat

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/halilcengel/note.verse.backend/config"
)

func newTestClient(serviceURL string) *Client {
	return NewClient(config.ChatConfig{
		ServiceURL:     serviceURL,
		ConnectTimeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestOpen_ForwardsBodyAndContentType(t *testing.T) {
	var gotBody string
	var gotContentType string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte("ok"))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	stream, err := client.Open(context.Background(),
		strings.NewReader(`{"message":"merhaba","thread_id":"t-1"}`))
	require.NoError(t, err)
	defer stream.Close()

	assert.Equal(t, `{"message":"merhaba","thread_id":"t-1"}`, gotBody)
	assert.Equal(t, "application/json", gotContentType)
}

func TestOpen_NonSuccessBecomesUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"thread_id is required"}`))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	stream, err := client.Open(context.Background(), strings.NewReader("{}"))

	assert.Nil(t, stream)
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusUnprocessableEntity, upstreamErr.StatusCode)
	assert.Equal(t, `{"detail":"thread_id is required"}`, string(upstreamErr.Body))
	assert.Contains(t, upstreamErr.Error(), "422")
}

func TestStream_DrainsUntilEOF(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher := w.(http.Flusher)
		for _, chunk := range []string{"Bir", " iki", " uc"} {
			_, _ = w.Write([]byte(chunk))
			flusher.Flush()
		}
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	stream, err := client.Open(context.Background(), strings.NewReader("{}"))
	require.NoError(t, err)
	defer stream.Close()

	var collected strings.Builder
	for {
		chunk, err := stream.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		collected.Write(chunk)
	}
	assert.Equal(t, "Bir iki uc", collected.String())
}

func TestOpen_CancelledContext(t *testing.T) {
	started := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.ReadAll(r.Body)
		close(started)
		<-r.Context().Done()
	}))
	defer upstream.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	client := newTestClient(upstream.URL)
	stream, err := client.Open(ctx, strings.NewReader("{}"))

	assert.Nil(t, stream)
	assert.Error(t, err)
}
