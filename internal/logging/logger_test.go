package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"moviedb/internal/config"
	"moviedb/internal/logging"
)

func TestNewFromConfigMirrorsDebugToLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "error"
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "moviedb.log")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("collection loaded", logging.Int("count", 3))

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(content, &payload); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, content)
	}
	if payload["msg"] != "collection loaded" || payload["count"] != float64(3) {
		t.Fatalf("unexpected log content %q", content)
	}
}

func TestConsoleLoggerOmitsSourceForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesSourceForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerPrefixesComponentAndQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "storage").Info("movie added", logging.String(logging.FieldTitle, "The Matrix"))

	line := buf.String()
	if !strings.Contains(line, " INFO storage: movie added") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, `title="The Matrix"`) {
		t.Fatalf("expected quoted title, got %q", line)
	}
}

func TestLevelFiltersLowerRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Fatalf("info record should be filtered at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn record missing: %q", buf.String())
	}
}

func TestJSONLoggerUsesShortKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithCorrelationID(context.Background(), "abc-123")
	logging.WithContext(ctx, logger).Warn("bad file")

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if payload["level"] != "warn" || payload["msg"] != "bad file" {
		t.Fatalf("unexpected payload %#v", payload)
	}
	if payload[logging.FieldCorrelationID] != "abc-123" {
		t.Fatalf("expected correlation id, got %#v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %#v", payload)
	}
}

func TestJSONLoggerRedactsProviderKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	lookupErr := errors.New(`Get "https://www.omdbapi.com/?apikey=s3cret&t=Heat": dial tcp: timeout`)
	logger.Warn("metadata lookup failed",
		logging.Error(lookupErr),
		logging.String("request", "https://api.themoviedb.org/3/search/movie?api_key=s3cret&query=Heat"),
		logging.String(logging.FieldTitle, "Heat"),
	)

	line := buf.String()
	if strings.Contains(line, "s3cret") {
		t.Fatalf("provider key leaked into log line %q", line)
	}
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, line)
	}
	if got, _ := payload["error"].(string); !strings.Contains(got, "apikey=<redacted>&t=Heat") {
		t.Fatalf("unexpected error value %q", got)
	}
	if got, _ := payload["request"].(string); !strings.Contains(got, "api_key=<redacted>&query=Heat") {
		t.Fatalf("unexpected request value %q", got)
	}
	if payload[logging.FieldTitle] != "Heat" {
		t.Fatalf("unrelated attribute changed: %#v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WarnWithContext(logger, "collection unreadable", "storage_malformed")

	line := buf.String()
	for _, want := range []string{"event_type=storage_malformed", "error_hint=", "impact="} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
}
