package tools

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
)

// ValidateArguments checks raw JSON arguments against a tool's declared
// schema: required parameters present, unknown parameters rejected when
// the tool is strict, and declared scalar/array/object kinds respected.
// It never executes the handler.
func ValidateArguments(def ToolDefinition, raw json.RawMessage) error {
	if len(raw) == 0 {
		raw = json.RawMessage(`{}`)
	}
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("arguments for %q are not valid JSON", def.Name)
	}
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsObject() {
		return fmt.Errorf("arguments for %q must be a JSON object", def.Name)
	}
	fields := parsed.Map()

	for _, req := range def.InputSchema.Required {
		if _, ok := fields[req]; !ok {
			return fmt.Errorf("missing required parameter %q", req)
		}
	}

	// Deterministic iteration so repeated failures produce the same message.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop, declared := def.InputSchema.Properties[name]
		if !declared {
			if def.Strict {
				return fmt.Errorf("unknown parameter %q", name)
			}
			continue
		}
		if err := checkKind(name, prop.Type, fields[name]); err != nil {
			return err
		}
	}
	return nil
}

func checkKind(name, declared string, v gjson.Result) error {
	ok := true
	switch declared {
	case "string":
		ok = v.Type == gjson.String
	case "integer", "number":
		ok = v.Type == gjson.Number
	case "boolean":
		ok = v.Type == gjson.True || v.Type == gjson.False
	case "array":
		ok = v.IsArray()
	case "object":
		ok = v.IsObject()
	}
	if !ok {
		return fmt.Errorf("parameter %q must be of type %s", name, declared)
	}
	return nil
}
