package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger() (*DefaultLogger, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	return NewWriterLogger(stdout, stderr), stdout, stderr
}

func TestLevelFiltering(t *testing.T) {
	l, stdout, stderr := newBufferedLogger()

	l.Debug("hidden")
	l.Info("shown")
	l.Warn("careful")
	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "[INFO] shown")
	assert.Contains(t, stderr.String(), "[WARN] careful")

	l.SetLevel(DebugLevel)
	l.Debug("now visible")
	assert.Contains(t, stdout.String(), "[DEBUG] now visible")
}

func TestFieldsAreSortedAndMerged(t *testing.T) {
	l, stdout, _ := newBufferedLogger()

	child := l.WithFields(Fields{"b": 2, "a": 1})
	child.Info("scan", Fields{"c": 3, "a": 9})
	assert.Contains(t, stdout.String(), "[INFO] scan a=9 b=2 c=3")

	stdout.Reset()
	l.Info("parent")
	assert.Contains(t, stdout.String(), "[INFO] parent")
	assert.NotContains(t, stdout.String(), "b=2", "child fields must not leak into the parent")
}

func TestErrorIncludesCause(t *testing.T) {
	l, _, stderr := newBufferedLogger()
	l.Error(errors.New("window overflow"), "scan failed", Fields{"frame": 12})
	assert.Contains(t, stderr.String(), "[ERROR] scan failed: window overflow frame=12")
}

func TestFatalExits(t *testing.T) {
	l, _, stderr := newBufferedLogger()
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal(errors.New("boom"), "giving up")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "[FATAL] giving up: boom")
}

func TestContextFields(t *testing.T) {
	l, stdout, _ := newBufferedLogger()

	ctx := ContextWithFields(context.Background(), Fields{"channel": 3})
	ctx = ContextWithFields(ctx, Fields{"block": "R19-01"})

	fields, ok := FieldsFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, Fields{"channel": 3, "block": "R19-01"}, fields)

	l.WithContext(ctx).Info("detected")
	assert.Contains(t, stdout.String(), "[INFO] detected block=R19-01 channel=3")

	assert.Same(t, l, l.WithContext(context.Background()))
}

func TestColorsWrapWarnings(t *testing.T) {
	l, _, stderr := newBufferedLogger()
	l.useColors = true

	l.Warn("legacy")
	assert.Contains(t, stderr.String(), ColorYellow+"[WARN] legacy"+ColorReset)
}

func TestGlobalLogger(t *testing.T) {
	previous := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(previous) })

	l, stdout, _ := newBufferedLogger()
	SetGlobalLogger(l)
	Info("through global", Fields{"k": "v"})
	assert.Contains(t, stdout.String(), "[INFO] through global k=v")

	SetGlobalLogger(nil)
	assert.IsType(t, &NoOpLogger{}, GetGlobalLogger())
	Info("dropped")
	assert.NotContains(t, stdout.String(), "dropped")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "ERROR", ErrorLevel.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
