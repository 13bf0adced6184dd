package obs

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogRequestStampsService(t *testing.T) {
	logger := Logger()
	origWriter := logger.Writer()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(origWriter)

	LogRequest(map[string]any{"msg": "request_complete", "status": 200})

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["service"] != serviceName {
		t.Fatalf("expected service %q, got %v", serviceName, entry["service"])
	}
	if entry["msg"] != "request_complete" {
		t.Fatalf("unexpected msg %v", entry["msg"])
	}

	buf.Reset()
	LogRequest(map[string]any{"msg": "x", "service": "custom"})
	entry = map[string]any{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["service"] != "custom" {
		t.Fatalf("explicit service must win, got %v", entry["service"])
	}
}
