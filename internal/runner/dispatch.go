package runner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campusworks/advisor-agent/internal/conversation"
	"github.com/campusworks/advisor-agent/tools"
)

// Dispatcher resolves one tool-call request against the registry and
// executes the handler. It is stateless; whatever the handler does to
// external state is the handler's business.
//
// Execute is total over arbitrary model requests: unknown names and
// schema-invalid arguments come back as error result turns the model can
// recover from. Only a broken handler escalates.
type Dispatcher struct {
	registry *tools.Registry
	names    *tools.NameMap
}

// NewDispatcher validates the advertised-name mapping against the
// registry before anything runs; a hole in the mapping is registry
// misconfiguration and refuses to start. A nil name map means the
// advertised names are the registry keys.
func NewDispatcher(registry *tools.Registry, names *tools.NameMap) (*Dispatcher, error) {
	if names == nil {
		names = tools.IdentityNameMap(registry)
	}
	if err := names.Validate(registry); err != nil {
		return nil, err
	}
	return &Dispatcher{registry: registry, names: names}, nil
}

// AdvertisedSchemas returns the tool definitions with their advertised
// names substituted, in registration order. The order never changes
// between iterations.
func (d *Dispatcher) AdvertisedSchemas() []tools.ToolDefinition {
	defs := d.registry.Schemas()
	for i := range defs {
		if advertised, ok := d.names.AdvertisedFor(defs[i].Name); ok {
			defs[i].Name = advertised
		}
	}
	return defs
}

// Execute runs one tool call and produces its result turn. The second
// return is non-nil only for internal faults (*FatalError); protocol
// failures are embedded in the returned turn instead.
func (d *Dispatcher) Execute(ctx context.Context, call conversation.Turn) (conversation.Turn, error) {
	if call.Kind != conversation.KindAssistantToolCall {
		return conversation.Turn{}, &FatalError{
			Phase: PhaseDispatch,
			Err:   fmt.Errorf("dispatcher invoked with %s turn", call.Kind),
		}
	}

	// An empty or unmapped name is a protocol failure the model gets to
	// see and correct, never an abort.
	key, ok := d.names.Resolve(call.ToolName)
	if !ok {
		return conversation.ToolError(call.CallID, fmt.Sprintf("unknown tool %q", call.ToolName)), nil
	}
	def, err := d.registry.Resolve(key)
	if err != nil {
		return conversation.ToolError(call.CallID, fmt.Sprintf("unknown tool %q", call.ToolName)), nil
	}

	if err := tools.ValidateArguments(def, call.Arguments); err != nil {
		return conversation.ToolError(call.CallID, "invalid arguments: "+err.Error()), nil
	}

	payload, err := invokeHandler(ctx, def, call.Arguments)
	if err != nil {
		return conversation.Turn{}, &FatalError{
			Phase: PhaseDispatch,
			Err:   fmt.Errorf("tool %q: %w", call.ToolName, err),
		}
	}
	return conversation.ToolResult(call.CallID, payload), nil
}

// invokeHandler shields the loop from panicking handlers; a panic is an
// internal fault like any other handler error.
func invokeHandler(ctx context.Context, def tools.ToolDefinition, input json.RawMessage) (payload string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("handler panicked: %v", p)
		}
	}()
	if len(input) == 0 {
		input = json.RawMessage(`{}`)
	}
	return def.Function(ctx, input)
}
