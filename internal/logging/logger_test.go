package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_KeyValues(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	l := FromZap(zap.New(core)).With("run_id", "r1")

	l.Info("merged", "rows", 3, "err", errors.New("boom"), "dangling")

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "merged", entries[0].Message)
	assert.Equal(t, "r1", ctx["run_id"])
	assert.EqualValues(t, 3, ctx["rows"])
	assert.Equal(t, "boom", ctx["err"])
	assert.Contains(t, ctx, "dangling")
}

func TestLogger_LevelFilter(t *testing.T) {
	core, logs := observer.New(LevelWarn)
	l := FromZap(zap.New(core))

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	assert.Equal(t, 1, logs.Len())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelInfo, ParseLevel(""))
	assert.Equal(t, LevelInfo, ParseLevel("loud"))
}

func TestDefault_NilSafe(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	SetDefault(nil)
	require.NotNil(t, Default())

	var l *Logger
	assert.NotPanics(t, func() { l.Info("nil receiver") })
}
