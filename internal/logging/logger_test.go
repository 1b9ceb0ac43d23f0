package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"clipset/internal/logging"
)

func TestConsoleHandlerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With("component", "manifest").Info("built split", "entries", 42)

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "INFO manifest: built split") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "entries=42") {
		t.Fatalf("missing attr in console line: %q", line)
	}
}

func TestConsoleHandlerQuotesAwkwardValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("msg", "path", "/tmp/with space")
	if !strings.Contains(buf.String(), `path="/tmp/with space"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestJSONHandlerEmitsParsableLines(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("ingested", "split", "train")

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json line does not parse: %v", err)
	}
	if decoded["msg"] != "ingested" || decoded["split"] != "train" {
		t.Fatalf("unexpected json payload: %v", decoded)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line should have been filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := logging.NewNop()
	ctx := logging.WithContext(context.Background(), logger)
	if got := logging.FromContext(ctx); got != logger {
		t.Fatal("FromContext did not return attached logger")
	}
	if got := logging.FromContext(context.Background()); got == nil {
		t.Fatal("FromContext must not return nil")
	}
}
