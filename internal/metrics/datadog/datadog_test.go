package datadog

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbastats/internal/metrics"
)

func TestNewBackend_RequiresAddr(t *testing.T) {
	t.Parallel()

	b, err := NewBackend(Config{})
	require.Error(t, err)
	assert.Nil(t, b)
}

func TestLabelsToTags(t *testing.T) {
	t.Parallel()

	assert.Nil(t, labelsToTags(nil))
	assert.Equal(t,
		[]string{"job:nba", "status:success", "step:merge"},
		labelsToTags(metrics.Labels{"step": "merge", "job": "nba", "status": "success"}),
	)
}

func TestZeroBackendIsSafe(t *testing.T) {
	t.Parallel()

	b := &Backend{}
	assert.NotPanics(t, func() {
		b.IncCounter(metrics.RowsTotal, 1, nil)
		b.ObserveHistogram(metrics.StepDuration, 1, nil)
	})
	assert.NoError(t, b.Flush())
}

func TestBackend_SendsToAgent(t *testing.T) {
	t.Parallel()

	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	b, err := NewBackend(Config{Addr: conn.LocalAddr().String(), GlobalTags: []string{"env:test"}})
	require.NoError(t, err)

	b.IncCounter(metrics.RowsTotal, 4, metrics.Labels{"kind": "loaded"})
	b.ObserveHistogram(metrics.StepDuration, 0.25, metrics.Labels{"step": "load"})
	require.NoError(t, b.Flush())

	var got strings.Builder
	buf := make([]byte, 4096)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for !strings.Contains(got.String(), metrics.StepDuration) || !strings.Contains(got.String(), metrics.RowsTotal) {
		n, _, err := conn.ReadFrom(buf)
		require.NoError(t, err)
		got.Write(buf[:n])
	}

	payload := got.String()
	assert.Contains(t, payload, metrics.RowsTotal+":4|c")
	assert.Contains(t, payload, metrics.StepDuration+":0.25|h")
	assert.Contains(t, payload, "kind:loaded")
	assert.Contains(t, payload, "env:test")
}
