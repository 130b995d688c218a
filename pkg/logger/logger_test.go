package logger

import (
	"bytes"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, charmlog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, charmlog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, charmlog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, charmlog.InfoLevel, ParseLevel("verbose"))
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf})

	l.Info("hidden")
	l.Warn("shown", "page", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "page=2")
}

func TestJSONWith(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{JSON: true, Output: &buf}).With("component", "view")

	l.Error("fetch failed", "err", "boom")

	assert.Contains(t, buf.String(), `"msg":"fetch failed"`)
	assert.Contains(t, buf.String(), `"component":"view"`)
	assert.Contains(t, buf.String(), `"err":"boom"`)
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop().With("a", 1).Error("nothing")
	})
}
