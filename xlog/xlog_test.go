package xlog

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LogLevelDebug.String())
	require.Equal(t, "INFO", LogLevelInfo.String())
	require.Equal(t, "WARN", LogLevelWarn.String())
	require.Equal(t, "ERROR", LogLevelError.String())
	require.Equal(t, zapcore.DebugLevel, LogLevelDebug.zapLevel())
	require.Equal(t, zapcore.InfoLevel, LogLevelInfo.zapLevel())
	require.Equal(t, zapcore.WarnLevel, LogLevelWarn.zapLevel())
	require.Equal(t, zapcore.ErrorLevel, LogLevelError.zapLevel())

	require.Equal(t, zapcore.DebugLevel, getLogLevelOrDefault(""))
	require.Equal(t, zapcore.WarnLevel, getLogLevelOrDefault("warn"))
	require.Equal(t, zapcore.DebugLevel, getLogLevelOrDefault("verbose"))
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel(" warn ")
	require.NoError(t, err)
	require.Equal(t, LogLevelWarn, lvl)
	lvl, err = ParseLogLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, LogLevelDebug, lvl)

	_, err = ParseLogLevel("foo")
	require.ErrorIs(t, err, ErrUnknownLogLevel)
	_, err = ParseLogLevel("")
	require.ErrorIs(t, err, ErrUnknownLogLevel)
}

func TestParseLogEncoder(t *testing.T) {
	require.Equal(t, PlainText, ParseLogEncoder("text"))
	require.Equal(t, PlainText, ParseLogEncoder("console"))
	require.Equal(t, JSON, ParseLogEncoder("json"))
	require.Equal(t, JSON, ParseLogEncoder(""))
}

type testBanner struct{}

func (b testBanner) JSON() string {
	return "{\"app\":\"bstviz\"}"
}

func (b testBanner) PlainText() string {
	return "bstviz"
}

type testMemOutWriter struct {
	bytes.Buffer
}

func (w *testMemOutWriter) Sync() error { return nil }

func (w *testMemOutWriter) lines(t *testing.T) []map[string]any {
	res := make([]map[string]any, 0, 8)
	for _, line := range strings.Split(strings.TrimSpace(w.String()), "\n") {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		res = append(res, m)
	}
	return res
}

func newTestLogger(t *testing.T, w *testMemOutWriter, opts ...XLoggerOption) XLogger {
	opts = append([]XLoggerOption{
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerEncoder(JSON),
		WithXLoggerWriteSyncer(w),
	}, opts...)
	l, err := TryNewXLogger(opts...)
	require.NoError(t, err)
	return l
}

func TestXLoggerJSONFields(t *testing.T) {
	w := &testMemOutWriter{}
	logger := newTestLogger(t, w)
	logger.Debug("debug msg", zap.Int("key", 5))
	logger.Info("info msg")
	logger.Warn("warn msg")
	logger.Error(errors.New("boom"), "error msg")
	logger.Logf(zapcore.InfoLevel, "formatted %d", 7)
	require.NoError(t, logger.Sync())

	lines := w.lines(t)
	require.Len(t, lines, 5)
	require.Equal(t, "debug msg", lines[0]["msg"])
	require.Equal(t, "DEBUG", lines[0]["lvl"])
	require.Equal(t, float64(5), lines[0]["key"])
	require.Contains(t, lines[0]["callAt"], "xlog_test.go")
	require.Equal(t, "boom", lines[3]["error"])
	require.Equal(t, "formatted 7", lines[4]["msg"])
}

func TestXLoggerErrorStack(t *testing.T) {
	w := &testMemOutWriter{}
	logger := newTestLogger(t, w)
	logger.ErrorStack(errors.New("deep"), "stack msg")
	lines := w.lines(t)
	require.Len(t, lines, 1)
	require.Equal(t, "deep", lines[0]["error"])
	require.Contains(t, lines[0]["errorStack"], "xlog_test.go")
}

func TestXLoggerIncreaseLogLevel(t *testing.T) {
	w := &testMemOutWriter{}
	logger := newTestLogger(t, w)
	child := logger.Named("child")
	require.Equal(t, "debug", logger.Level())

	logger.IncreaseLogLevel(zapcore.InfoLevel)
	logger.Debug("dropped")
	child.Debug("dropped")
	child.Info("kept")
	require.Equal(t, "info", child.Level())

	logger.IncreaseLogLevel(zapcore.DebugLevel)
	child.Debug("kept again")

	lines := w.lines(t)
	require.Len(t, lines, 2)
	require.Equal(t, "kept", lines[0]["msg"])
	require.Equal(t, "child", lines[0]["component"])
	require.Equal(t, "kept again", lines[1]["msg"])
}

func TestXLoggerContextFields(t *testing.T) {
	w := &testMemOutWriter{}
	logger := newTestLogger(t, w,
		WithXLoggerContextFieldExtract("op"),
		WithXLoggerContextFieldExtract("traceId", "trace"),
		WithXLoggerContextFieldExtract("secret", ContextKeyMapToOmitempty),
		WithXLoggerContextFieldExtract(""),
	)
	ctx := ContextWithField(context.Background(), "op", "insert")
	ctx = ContextWithField(ctx, "secret", "hidden")
	logger.InfoContext(ctx, "ctx msg")
	logger.ErrorContext(ctx, errors.New("bad"), "ctx err")
	logger.DebugContext(ctx, "ctx debug")
	logger.WarnContext(ctx, "ctx warn", zap.Int("key", 5))

	lines := w.lines(t)
	require.Len(t, lines, 4)
	require.Equal(t, "insert", lines[0]["op"])
	require.Equal(t, "nil", lines[0]["trace"])
	require.NotContains(t, lines[0], "secret")
	require.Equal(t, "bad", lines[1]["error"])
	require.Equal(t, "DEBUG", lines[2]["lvl"])
	require.Equal(t, "insert", lines[2]["op"])
	require.Equal(t, "WARN", lines[3]["lvl"])
	require.Equal(t, float64(5), lines[3]["key"])
}

func TestXLoggerEncoders(t *testing.T) {
	w := &testMemOutWriter{}
	logger := newTestLogger(t, w,
		WithXLoggerLevelEncoder(zapcore.LowercaseLevelEncoder),
		WithXLoggerTimeEncoder(zapcore.TimeEncoderOfLayout("2006")),
	)
	logger.Info("encoded")
	lines := w.lines(t)
	require.Len(t, lines, 1)
	require.Equal(t, "info", lines[0]["lvl"])
	require.Len(t, lines[0]["ts"], 4)

	// Nil encoders fall back to the colored level and ISO8601 time.
	w = &testMemOutWriter{}
	logger = newTestLogger(t, w,
		WithXLoggerLevelEncoder(nil),
		WithXLoggerTimeEncoder(nil),
	)
	logger.Warn("colored")
	lines = w.lines(t)
	require.Len(t, lines, 1)
	require.Contains(t, lines[0]["lvl"], "WARN")
	require.NotEqual(t, "WARN", lines[0]["lvl"])
	require.Contains(t, lines[0]["ts"], "T")
}

func TestXLoggerInvalidOptions(t *testing.T) {
	_, err := TryNewXLogger(WithXLoggerEncoder(_encMax))
	require.Error(t, err)
	_, err = TryNewXLogger(WithXLoggerWriter(_writerMax))
	require.Error(t, err)
	require.Panics(t, func() {
		NewXLogger(WithXLoggerEncoder(_encMax))
	})
}

func TestXLoggerFileCore(t *testing.T) {
	w := &testMemOutWriter{}
	path := filepath.Join(t.TempDir(), "logs", "bstviz.log")
	logger := newTestLogger(t, w, WithXLoggerFileCore(path))
	logger.Info("to both")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "to both")
	require.Len(t, w.lines(t), 1)
}

func TestXLoggerBanner(t *testing.T) {
	w := &testMemOutWriter{}
	logger := newTestLogger(t, w)
	logger.Banner(testBanner{})
	logger.Banner(testBanner{})
	require.Equal(t, 1, strings.Count(w.String(), "bstviz"))
}

func TestAntsXLogger(t *testing.T) {
	var nilLogger *AntsXLogger
	nilLogger.Printf("test %d", 123)
	require.Nil(t, NewAntsXLogger(nil))

	w := &testMemOutWriter{}
	logger := NewAntsXLogger(newTestLogger(t, w))
	logger.Printf("worker %d exits", 1)
	lines := w.lines(t)
	require.Len(t, lines, 1)
	require.Equal(t, "ants", lines[0]["component"])
	require.Equal(t, "worker 1 exits", lines[0]["msg"])
}
