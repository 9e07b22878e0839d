package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/aalopez23/county-hr-dashboard/internal/auth"
	"github.com/aalopez23/county-hr-dashboard/internal/obs"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	obs.Logger().SetOutput(&buf)
	t.Cleanup(func() { obs.Logger().SetOutput(os.Stdout) })
	return &buf
}

func TestLogEvent(t *testing.T) {
	buf := captureLog(t)

	ctx := auth.ContextWithUser(context.Background(), "admin-1", "admin")
	ctx = WithRequestID(ctx, "req-123")

	err := LogEvent(ctx, "timeoff.approved", map[string]any{"request_id_reviewed": "1"})
	if err != nil {
		t.Fatalf("LogEvent: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v: %q", err, buf.String())
	}
	if entry["type"] != "audit" || entry["event"] != "timeoff.approved" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request id, got %v", entry["request_id"])
	}
	if entry["user_id"] != "admin-1" || entry["role"] != "admin" {
		t.Fatalf("expected actor fields, got %v", entry)
	}
	fields, ok := entry["fields"].(map[string]any)
	if !ok || fields["request_id_reviewed"] != "1" {
		t.Fatalf("expected custom fields, got %v", entry["fields"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatal("expected a timestamp")
	}
}

func TestLogEventWithoutContext(t *testing.T) {
	buf := captureLog(t)

	if err := LogEvent(context.Background(), "session.logout", nil); err != nil {
		t.Fatalf("LogEvent: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if _, ok := entry["request_id"]; ok {
		t.Fatal("expected no request id without context")
	}
	if _, ok := entry["user_id"]; ok {
		t.Fatal("expected no user id without context")
	}
	if fields, ok := entry["fields"].(map[string]any); !ok || len(fields) != 0 {
		t.Fatalf("expected empty fields object, got %v", entry["fields"])
	}
}

func TestLogEventRequiresName(t *testing.T) {
	if err := LogEvent(context.Background(), "   ", nil); err == nil {
		t.Fatal("expected error for blank event name")
	}
}
