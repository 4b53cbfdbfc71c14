package httpds

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastClient(retries int) *Client {
	return NewClient(Config{MaxRetries: retries, InitialBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond})
}

func TestSource_Open(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "nbastats", r.Header.Get("User-Agent"))
		_, _ = io.WriteString(w, "Player,PTS\nA,25\n")
	}))
	defer srv.Close()

	c := NewClient(Config{Header: http.Header{"User-Agent": {"nbastats"}}})
	src := NewSource(c, srv.URL+"/player_stats.csv")
	assert.Equal(t, srv.URL+"/player_stats.csv", src.Describe())

	rc, err := src.Open(context.Background())
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "Player,PTS\nA,25\n", string(b))
}

func TestSource_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	rc, err := NewSource(fastClient(3), srv.URL).Open(context.Background())
	require.NoError(t, err)
	rc.Close()
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_DefaultRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	resp, err := NewClient(Config{InitialBackoff: time.Millisecond}).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 3, NewClient(Config{}).maxRetries)
}

func TestClient_NegativeRetriesDisable(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(Config{MaxRetries: -1}).Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "giving up after 1 attempts")
	assert.Equal(t, int32(1), calls.Load())
}

func TestSource_Errors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewSource(fastClient(3), srv.URL+"/missing").Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), calls.Load(), "4xx is not retried")

	_, err = NewSource(fastClient(2), srv.URL+"/down").Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "giving up after 3 attempts")

	_, err = NewSource(nil, "").Open(context.Background())
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewSource(nil, srv.URL).Open(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoff(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 100*time.Millisecond, backoff(100*time.Millisecond, 0, time.Second))
	assert.Equal(t, 400*time.Millisecond, backoff(100*time.Millisecond, 2, time.Second))
	assert.Equal(t, time.Second, backoff(100*time.Millisecond, 10, time.Second))
	assert.Equal(t, time.Second, backoff(100*time.Millisecond, 80, time.Second), "overflow clamps")
}
