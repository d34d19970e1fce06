package server

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/log"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	consoleChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render", log.New("test"), consoleChan)

	logger.Infof("Test message %d", 42)

	select {
	case msg := <-consoleChan:
		if msg.Message != "Test message 42" {
			t.Errorf("Expected 'Test message 42', got '%s'", msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if msg.Timestamp.IsZero() {
			t.Error("Expected timestamp to be set")
		}
	default:
		t.Error("Expected message in console channel")
	}
}

func TestWebLogger_Levels(t *testing.T) {
	consoleChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render", log.New("test"), consoleChan)

	logger.Debug("a")
	logger.Info("b")
	logger.Notice("c")
	logger.Warning("d")
	logger.Error("e")

	expected := []struct{ level, message string }{
		{"debug", "a"},
		{"info", "b"},
		{"notice", "c"},
		{"warning", "d"},
		{"error", "e"},
	}

	for _, want := range expected {
		msg := <-consoleChan
		if msg.Level != want.level || msg.Message != want.message {
			t.Errorf("Expected %s %q, got %s %q", want.level, want.message, msg.Level, msg.Message)
		}
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	consoleChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render", log.New("test"), consoleChan)

	// The second message is dropped instead of blocking
	logger.Infof("First message")
	logger.Infof("Second message")

	if len(consoleChan) != 1 {
		t.Fatalf("Expected 1 buffered message, got %d", len(consoleChan))
	}
	if msg := <-consoleChan; msg.Message != "First message" {
		t.Errorf("Expected first message to be kept, got '%s'", msg.Message)
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render", log.New("test"), nil)

	// Should not panic
	logger.Warningf("Test message")
}

func TestConsoleMessage_JSONSerialization(t *testing.T) {
	consoleChan := make(chan ConsoleMessage, 1)
	NewWebLogger("test-render", log.New("test"), consoleChan).Noticef("Test %s", "message")

	data, err := json.Marshal(<-consoleChan)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	for _, field := range []string{`"message":"Test message"`, `"level":"notice"`, `"timestamp":`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("Expected %s in %s", field, data)
		}
	}
}
