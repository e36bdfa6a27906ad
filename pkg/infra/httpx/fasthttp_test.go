package httpx

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFastHTTPClient_Do(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/detect", r.URL.Path)
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
		assert.Equal(t, "trustimage-test", r.Header.Get("User-Agent"))
		assert.Equal(t, []byte("jpeg-bytes"), body)

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("X-Model", "nudenet")
		_, _ = w.Write(gzipCompress([]byte(`{"detections":[]}`)))
	}))
	defer srv.Close()

	client := NewFastHTTPClient(WithTimeout(5*time.Second), WithUserAgent("trustimage-test"))
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/detect", bytes.NewReader([]byte("jpeg-bytes")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `{"detections":[]}`, string(body))
	assert.Empty(t, resp.Header.Get("Content-Encoding"))
	assert.Equal(t, "nudenet", resp.Header.Get("X-Model"))
}

func TestFastHTTPClient_DoHonoursDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewFastHTTPClient(WithTimeout(time.Minute))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	assert.Error(t, err)
}

func TestFastHTTPClient_DoReturnsOnCancel(t *testing.T) {
	release := make(chan struct{})
	received := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(received)
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewFastHTTPClient(WithTimeout(time.Minute))
	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)

	go func() {
		<-received
		cancel()
	}()

	start := time.Now()
	_, err = client.Do(req)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFastHTTPClient_DoRejectsCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)

	_, err = NewFastHTTPClient().Do(req)
	assert.ErrorIs(t, err, context.Canceled)
}
