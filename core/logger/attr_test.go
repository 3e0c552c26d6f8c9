package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/docsession/core/logger"
)

func TestErrors(t *testing.T) {
	t.Parallel()
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, err1, g[0].Value.Any())
	assert.Equal(t, err2, g[1].Value.Any())

	empty := logger.Errors(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	t.Parallel()
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	empty := logger.Error(nil)
	assert.True(t, empty.Equal(slog.Attr{}))
}

func TestElapsed(t *testing.T) {
	t.Parallel()
	attr := logger.Elapsed(time.Now().Add(-time.Second))
	assert.Equal(t, "elapsed", attr.Key)
	assert.GreaterOrEqual(t, attr.Value.Duration(), time.Second)
}

func TestSessionAttrs(t *testing.T) {
	t.Parallel()

	t.Run("session id", func(t *testing.T) {
		t.Parallel()
		attr := logger.SessionID("abc")
		assert.Equal(t, "session_id", attr.Key)
		assert.Equal(t, "abc", attr.Value.String())
		assert.True(t, logger.SessionID("").Equal(slog.Attr{}))
	})

	t.Run("collection", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "sessions", logger.Collection("sessions").Value.String())
		assert.True(t, logger.Collection("").Equal(slog.Attr{}))
	})

	t.Run("operation and found", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "get", logger.Operation("get").Value.String())
		assert.True(t, logger.Found(true).Value.Bool())
	})

	t.Run("count", func(t *testing.T) {
		t.Parallel()
		attr := logger.Count("sessions", 42)
		assert.Equal(t, "sessions", attr.Key)
		assert.Equal(t, int64(42), attr.Value.Int64())
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attrs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(logger.Component("test")),
		)
		log.Info("hello", logger.SessionID("s1"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "test", rec["component"])
		assert.Equal(t, "s1", rec["session_id"])
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithLevel(slog.LevelWarn),
			logger.WithFormat(logger.FormatText),
		)
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := logger.ParseLevel("verbose")
	assert.ErrorIs(t, err, logger.ErrUnknownLevel)
	assert.Contains(t, err.Error(), `"verbose"`)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, err := logger.ParseFormat("TEXT")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatText, f)

	f, err = logger.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, logger.FormatJSON, f)

	_, err = logger.ParseFormat("logfmt")
	assert.ErrorIs(t, err, logger.ErrUnknownFormat)
}
