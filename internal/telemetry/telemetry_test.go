package telemetry_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/campusworks/advisor-agent/internal/telemetry"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

func readEventLines(t *testing.T) []string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(".advisor", "events.jsonl"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatal(err)
	}
	var lines []string
	for _, ln := range strings.Split(string(b), "\n") {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

func TestEmit_GatingOff_NoWrites(t *testing.T) {
	t.Setenv("ADV_OBSERVE_JSON", "0")
	chdirTemp(t)

	telemetry.Emit("test_event", map[string]any{"foo": "bar"})
	if _, err := os.Stat(".advisor"); !os.IsNotExist(err) {
		t.Fatal("expected no .advisor directory when ADV_OBSERVE_JSON is off")
	}
}

func TestEmit_HappyPath(t *testing.T) {
	t.Setenv("ADV_OBSERVE_JSON", "1")
	chdirTemp(t)

	telemetry.Emit("test_event", map[string]any{"foo": "bar"})

	lines := readEventLines(t)
	if len(lines) != 1 {
		t.Fatalf("expected 1 event line, got %d", len(lines))
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &m); err != nil {
		t.Fatalf("invalid JSON line: %v", err)
	}
	if m["event"] != "test_event" || m["foo"] != "bar" {
		t.Fatalf("unexpected event payload: %v", m)
	}
	if s, ok := m["time"].(string); !ok || s == "" {
		t.Fatalf("missing time field: %v", m)
	}
}

func TestEmit_DoesNotMutateCallerFields(t *testing.T) {
	t.Setenv("ADV_OBSERVE_JSON", "1")
	chdirTemp(t)

	fields := map[string]any{"foo": "bar"}
	telemetry.Emit("test_event", fields)
	if len(fields) != 1 {
		t.Fatalf("caller map mutated: %v", fields)
	}
}

func TestRunID_Context(t *testing.T) {
	if _, ok := telemetry.RunIDFromContext(context.Background()); ok {
		t.Fatal("unexpected run ID on empty context")
	}
	ctx := telemetry.WithRunID(context.Background(), "run-1")
	id, ok := telemetry.RunIDFromContext(ctx)
	if !ok || id != "run-1" {
		t.Fatalf("run ID round trip failed: %q %v", id, ok)
	}
}

func TestEventSink_DoesNotLeakArgs(t *testing.T) {
	t.Setenv("ADV_OBSERVE_JSON", "1")
	chdirTemp(t)

	secret := "__SECRET_NEVER_APPEAR__"
	args := json.RawMessage(`{"code":"` + secret + `"}`)
	telemetry.EventSink{}.ToolInvoked(telemetry.WithRunID(context.Background(), "run-9"), "add_course", args, "ok")

	lines := readEventLines(t)
	if len(lines) != 1 {
		t.Fatalf("expected 1 event line, got %d", len(lines))
	}
	if strings.Contains(lines[0], secret) {
		t.Fatalf("raw arguments leaked into telemetry: %s", lines[0])
	}
	var m map[string]any
	_ = json.Unmarshal([]byte(lines[0]), &m)
	if m["tool_name"] != "add_course" || m["run_id"] != "run-9" {
		t.Fatalf("unexpected sink event: %v", m)
	}
	if n, ok := m["args_size"].(float64); !ok || int(n) != len(args) {
		t.Fatalf("args_size = %v, want %d", m["args_size"], len(args))
	}
}
