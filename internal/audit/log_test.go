package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"menuqr.app/internal/auth"
	"menuqr.app/internal/obs"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	logger := obs.Logger()
	orig := logger.Writer()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(orig) })
	return &buf
}

func TestLogEventIncludesActorAndRequestContext(t *testing.T) {
	buf := captureLog(t)

	actor, err := auth.TenantActor("user-1", "owner@cafe.example", auth.RoleTenantAdmin, "tenant-1")
	if err != nil {
		t.Fatalf("actor: %v", err)
	}
	ctx := auth.ContextWithActor(context.Background(), actor)
	ctx = WithRequestID(ctx, "req-123")

	if err := LogEvent(ctx, "auth.session.issued", map[string]any{"ip": "10.0.0.1"}); err != nil {
		t.Fatalf("log event: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry["type"] != "audit" || entry["event"] != "auth.session.issued" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request id, got %v", entry["request_id"])
	}
	if entry["user_id"] != "user-1" || entry["tenant_id"] != "tenant-1" {
		t.Fatalf("expected actor context, got %v", entry)
	}
	fields := entry["fields"].(map[string]any)
	if fields["ip"] != "10.0.0.1" {
		t.Fatalf("expected custom fields, got %v", fields)
	}
}

func TestLogEventRequiresName(t *testing.T) {
	if err := LogEvent(context.Background(), "  ", nil); err == nil {
		t.Fatal("expected error for empty event name")
	}
}
