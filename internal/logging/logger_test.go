package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vanshika/bankcore/internal/config"
)

func TestJSONFormatProducesJSONRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)

	logger.Info("account opened", "number", "ACC001")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "account opened" {
		t.Errorf("expected msg field, got %v", record["msg"])
	}
	if record["number"] != "ACC001" {
		t.Errorf("expected number attribute, got %v", record["number"])
	}
}

func TestTextFormatIsDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "info", Format: "unknown"}, &buf)

	logger.Info("ledger loaded")
	if !strings.Contains(buf.String(), "msg=\"ledger loaded\"") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered at warn level, got %q", buf.String())
	}

	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected warn output, got %q", buf.String())
	}
}

func TestLevelParsingAliases(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(config.LoggingConfig{Level: " WARNING ", Format: "text"}, &buf)

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("expected warning alias to filter info, got %q", buf.String())
	}
}
