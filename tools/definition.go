package tools

import (
	"context"
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
)

// Handler performs a tool's effect on validated arguments and returns a
// JSON-serializable payload. An error return is an internal fault and
// aborts the loop; expected domain failures belong in the payload.
type Handler func(ctx context.Context, input json.RawMessage) (string, error)

// ToolDefinition describes one tool as exposed to the model, plus the
// local handler that executes it.
type ToolDefinition struct {
	Name        string
	Description string
	// Strict rejects arguments carrying parameters outside the declared
	// schema.
	Strict      bool
	InputSchema Schema
	Function    Handler
}

// Schema pairs the wire-format parameter schema sent to the model with
// the pieces the dispatcher needs for local argument validation.
type Schema struct {
	Anthropic  anthropic.ToolInputSchemaParam
	Properties map[string]Property
	Required   []string
}

// Property is the locally-checked shape of one declared parameter.
type Property struct {
	Type string
}

// GenerateSchema derives the JSON Schema for a tool input struct. Fields
// are required unless their json tag carries omitempty, matching how the
// input structs are written.
func GenerateSchema[T any]() Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	reflected := reflector.Reflect(v)

	out := Schema{
		Anthropic: anthropic.ToolInputSchemaParam{
			Properties: reflected.Properties,
			Required:   reflected.Required,
		},
		Properties: make(map[string]Property),
		Required:   reflected.Required,
	}
	if reflected.Properties != nil {
		for pair := reflected.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = Property{Type: pair.Value.Type}
		}
	}
	return out
}
