package telemetry

import (
	"context"
	"encoding/json"
)

// EventSink forwards per-call progress to the JSONL event stream. It
// satisfies the loop's progress sink contract without holding state.
//
// Argument payloads are not logged verbatim; only their size is recorded,
// so raw tool inputs never leak into telemetry.
type EventSink struct{}

func (EventSink) ToolInvoked(ctx context.Context, name string, args json.RawMessage, summary string) {
	runID, _ := RunIDFromContext(ctx)
	Emit("tool_invoked", map[string]any{
		"run_id":    runID,
		"tool_name": name,
		"args_size": len(args),
		"summary":   summary,
	})
}
