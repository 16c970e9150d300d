package tools

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateTool = errors.New("duplicate tool name")
	ErrUnknownTool   = errors.New("unknown tool")
)

// Registry is the process-wide mapping from tool name to definition. It is
// read-only after setup and safe to share across concurrent loop runs.
// Schemas are exposed in registration order; some models are sensitive to
// schema order, so it never changes between iterations.
type Registry struct {
	defs  []ToolDefinition
	index map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

func (r *Registry) Register(def ToolDefinition) error {
	if def.Name == "" {
		return errors.New("tool name must not be empty")
	}
	if def.Function == nil {
		return fmt.Errorf("tool %q has no handler", def.Name)
	}
	if _, exists := r.index[def.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTool, def.Name)
	}
	r.index[def.Name] = len(r.defs)
	r.defs = append(r.defs, def)
	return nil
}

func (r *Registry) Resolve(name string) (ToolDefinition, error) {
	i, ok := r.index[name]
	if !ok {
		return ToolDefinition{}, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	return r.defs[i], nil
}

// Schemas returns the registered definitions in registration order.
func (r *Registry) Schemas() []ToolDefinition {
	out := make([]ToolDefinition, len(r.defs))
	copy(out, r.defs)
	return out
}

func (r *Registry) Len() int {
	return len(r.defs)
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d.Name)
	}
	return out
}
