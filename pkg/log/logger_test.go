package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	logger := New("test")

	SetLevel(Notice)
	logger.Infof("hidden %d", 1)
	logger.Noticef("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Errorf("Info message should be filtered at notice level, got %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Errorf("Expected notice message in output, got %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("Expected module name in output, got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debugf("debug %s", "line")
	if !strings.Contains(buf.String(), "debug line") {
		t.Errorf("Expected debug message after raising verbosity, got %q", buf.String())
	}
}

func TestSetSinkPreservesLevel(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)
	defer SetLevel(Notice)

	SetLevel(Error)
	SetSink(&buf)

	logger := New("test")
	logger.Warning("dropped")
	if buf.Len() != 0 {
		t.Errorf("Warning should be filtered at error level, got %q", buf.String())
	}
}
